package client

import (
	"context"

	"github.com/gnwofoke/portfolio-api/internal/domain/model"
	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
)

// PostSubmitter is the subset of the API a post form submits through.
type PostSubmitter interface {
	CreatePost(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error)
	UpdatePost(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error)
}

// PostForm is the blog post edit form: a draft plus the id of the record
// being edited, empty when composing a new post. Slug and reading time
// previews are derived from the draft, never entered.
type PostForm struct {
	editingID string
	Title     string
	Summary   string
	Content   string
	ImageURL  string
	Published bool
}

// BeginCreate resets the form for composing a new post.
func (f *PostForm) BeginCreate() {
	*f = PostForm{}
}

// BeginEdit loads an existing post into the form. Null fields map to
// zero values so the form never carries "null" strings.
func (f *PostForm) BeginEdit(post *model.BlogPost) {
	*f = PostForm{
		editingID: post.ID,
		Title:     post.Title,
		Summary:   post.Summary,
		Content:   post.Content,
		Published: post.Published,
	}
	if post.ImageURL != nil {
		f.ImageURL = *post.ImageURL
	}
}

// Cancel abandons the draft.
func (f *PostForm) Cancel() {
	*f = PostForm{}
}

// IsEditing reports whether Submit will update rather than create.
func (f *PostForm) IsEditing() bool {
	return f.editingID != ""
}

// SlugPreview shows the slug the server will derive from the title.
func (f *PostForm) SlugPreview() string {
	return model.Slugify(f.Title)
}

// ReadTimePreview shows the reading time the content will report.
func (f *PostForm) ReadTimePreview() int {
	return model.ReadingMinutes(f.Content)
}

// Validate blocks submission until the required fields are filled.
func (f *PostForm) Validate() error {
	if f.Title == "" || model.Slugify(f.Title) == "" {
		return apperrors.ValidationField("title", "title is required")
	}
	if f.Content == "" {
		return apperrors.ValidationField("content", "content is required")
	}
	return nil
}

// Submit validates the draft and sends it: update when editing, create
// otherwise. The form resets on success.
func (f *PostForm) Submit(ctx context.Context, api PostSubmitter) (*model.BlogPost, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var (
		post *model.BlogPost
		err  error
	)
	if f.IsEditing() {
		// Copy the draft before taking addresses: the form resets on
		// success, and the request must not alias the zeroed fields.
		title, summary, content, published := f.Title, f.Summary, f.Content, f.Published
		var imageURL *string
		if f.ImageURL != "" {
			image := f.ImageURL
			imageURL = &image
		}
		post, err = api.UpdatePost(ctx, f.editingID, model.UpdateBlogPostRequest{
			Title:     &title,
			Summary:   &summary,
			Content:   &content,
			ImageURL:  imageURL,
			Published: &published,
		})
	} else {
		req := &model.CreateBlogPostRequest{
			Title:     f.Title,
			Summary:   f.Summary,
			Content:   f.Content,
			Published: f.Published,
		}
		if f.ImageURL != "" {
			req.ImageURL = &f.ImageURL
		}
		post, err = api.CreatePost(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	*f = PostForm{}
	return post, nil
}

// ProjectSubmitter is the subset of the API a project form submits through.
type ProjectSubmitter interface {
	CreateProject(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, req model.UpdateProjectRequest) (*model.Project, error)
}

// ProjectForm is the project edit form.
type ProjectForm struct {
	editingID   string
	Title       string
	Description string
	Tech        string
	URL         string
	GithubURL   string
	ImageURL    string
	Featured    bool
}

// BeginCreate resets the form for a new project.
func (f *ProjectForm) BeginCreate() {
	*f = ProjectForm{}
}

// BeginEdit loads an existing project into the form, mapping null fields
// to zero values.
func (f *ProjectForm) BeginEdit(project *model.Project) {
	*f = ProjectForm{
		editingID:   project.ID,
		Title:       project.Title,
		Description: project.Description,
		Tech:        project.Tech,
		Featured:    project.Featured,
	}
	if project.URL != nil {
		f.URL = *project.URL
	}
	if project.GithubURL != nil {
		f.GithubURL = *project.GithubURL
	}
	if project.ImageURL != nil {
		f.ImageURL = *project.ImageURL
	}
}

// Cancel abandons the draft.
func (f *ProjectForm) Cancel() {
	*f = ProjectForm{}
}

// IsEditing reports whether Submit will update rather than create.
func (f *ProjectForm) IsEditing() bool {
	return f.editingID != ""
}

// Validate blocks submission until the required fields are filled.
func (f *ProjectForm) Validate() error {
	if f.Title == "" {
		return apperrors.ValidationField("title", "title is required")
	}
	if f.Description == "" {
		return apperrors.ValidationField("description", "description is required")
	}
	if f.Tech == "" {
		return apperrors.ValidationField("tech", "tech is required")
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Submit validates the draft and sends it, resetting the form on success.
func (f *ProjectForm) Submit(ctx context.Context, api ProjectSubmitter) (*model.Project, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var (
		project *model.Project
		err     error
	)
	if f.IsEditing() {
		project, err = api.UpdateProject(ctx, f.editingID, model.UpdateProjectRequest{
			Title:       &f.Title,
			Description: &f.Description,
			Tech:        &f.Tech,
			URL:         optional(f.URL),
			GithubURL:   optional(f.GithubURL),
			ImageURL:    optional(f.ImageURL),
			Featured:    &f.Featured,
		})
	} else {
		project, err = api.CreateProject(ctx, &model.CreateProjectRequest{
			Title:       f.Title,
			Description: f.Description,
			Tech:        f.Tech,
			URL:         optional(f.URL),
			GithubURL:   optional(f.GithubURL),
			ImageURL:    optional(f.ImageURL),
			Featured:    f.Featured,
		})
	}
	if err != nil {
		return nil, err
	}

	*f = ProjectForm{}
	return project, nil
}
