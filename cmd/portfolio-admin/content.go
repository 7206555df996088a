package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gnwofoke/portfolio-api/internal/client"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

func newProjectController(c *client.Client) *client.ListController[model.Project] {
	return client.NewListController(client.ResourceOps[model.Project]{
		List: c.ListProjects,
		Create: func(ctx context.Context, draft model.Project) (model.Project, error) {
			created, err := c.CreateProject(ctx, &model.CreateProjectRequest{
				Title:       draft.Title,
				Description: draft.Description,
				Tech:        draft.Tech,
				URL:         draft.URL,
				GithubURL:   draft.GithubURL,
				ImageURL:    draft.ImageURL,
				Featured:    draft.Featured,
			})
			if err != nil {
				return model.Project{}, err
			}
			return *created, nil
		},
		Update: func(ctx context.Context, id string, draft model.Project) (model.Project, error) {
			updated, err := c.UpdateProject(ctx, id, model.UpdateProjectRequest{
				Title:       &draft.Title,
				Description: &draft.Description,
				Tech:        &draft.Tech,
				URL:         draft.URL,
				GithubURL:   draft.GithubURL,
				ImageURL:    draft.ImageURL,
				Featured:    &draft.Featured,
			})
			if err != nil {
				return model.Project{}, err
			}
			return *updated, nil
		},
		Delete: c.DeleteProject,
		ID:     func(p model.Project) string { return p.ID },
	})
}

func newPostController(c *client.Client) *client.ListController[model.BlogPost] {
	return client.NewListController(client.ResourceOps[model.BlogPost]{
		List: c.ListAllPosts,
		Create: func(ctx context.Context, draft model.BlogPost) (model.BlogPost, error) {
			created, err := c.CreatePost(ctx, &model.CreateBlogPostRequest{
				Title:     draft.Title,
				Summary:   draft.Summary,
				Content:   draft.Content,
				ImageURL:  draft.ImageURL,
				Published: draft.Published,
			})
			if err != nil {
				return model.BlogPost{}, err
			}
			return *created, nil
		},
		Update: func(ctx context.Context, id string, draft model.BlogPost) (model.BlogPost, error) {
			updated, err := c.UpdatePost(ctx, id, model.UpdateBlogPostRequest{
				Title:     &draft.Title,
				Summary:   &draft.Summary,
				Content:   &draft.Content,
				ImageURL:  draft.ImageURL,
				Published: &draft.Published,
			})
			if err != nil {
				return model.BlogPost{}, err
			}
			return *updated, nil
		},
		Delete: c.DeletePost,
		ID:     func(p model.BlogPost) string { return p.ID },
	})
}

func newSkillController(c *client.Client) *client.ListController[model.Skill] {
	return client.NewListController(client.ResourceOps[model.Skill]{
		List: c.ListSkills,
		Create: func(ctx context.Context, draft model.Skill) (model.Skill, error) {
			created, err := c.CreateSkill(ctx, &model.CreateSkillRequest{
				Name:     draft.Name,
				Category: draft.Category,
				Level:    draft.Level,
			})
			if err != nil {
				return model.Skill{}, err
			}
			return *created, nil
		},
		Update: func(ctx context.Context, id string, draft model.Skill) (model.Skill, error) {
			updated, err := c.UpdateSkill(ctx, id, model.UpdateSkillRequest{
				Name:     &draft.Name,
				Category: &draft.Category,
				Level:    &draft.Level,
			})
			if err != nil {
				return model.Skill{}, err
			}
			return *updated, nil
		},
		Delete: c.DeleteSkill,
		ID:     func(s model.Skill) string { return s.ID },
	})
}

// confirmDelete runs the two-step delete flow. Without -yes the delete is
// only armed; nothing reaches the server.
func confirmDelete[T any](appCtx *appContext, ctrl *client.ListController[T], id string, confirmed bool) error {
	if err := ctrl.Load(appCtx.Ctx); err != nil {
		return err
	}
	ctrl.RequestDelete(id)
	if !confirmed {
		ctrl.CancelDelete()
		return fmt.Errorf("refusing to delete %s without -yes", id)
	}
	if err := ctrl.ConfirmDelete(appCtx.Ctx, id); err != nil {
		return err
	}
	return printNotification(ctrl.Notification())
}

func printNotification(note *client.Notification) error {
	if note == nil {
		return nil
	}
	if note.IsError {
		return writef(os.Stderr, "%s\n", note.Text)
	}
	return writef(os.Stdout, "%s\n", note.Text)
}

func runProjects(appCtx *appContext, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: portfolio-admin projects <list|create|edit|delete> [flags]")
	}
	// Listing is public; everything else needs a verified session.
	if args[0] != "list" {
		if err := ensureAdmin(appCtx); err != nil {
			return err
		}
	}

	ctrl := newProjectController(appCtx.Client)
	switch args[0] {
	case "list":
		if err := ctrl.Load(appCtx.Ctx); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if err := writef(tw, "ID\tTITLE\tTECH\tFEATURED\n"); err != nil {
			return err
		}
		for _, p := range ctrl.Items() {
			if err := writef(tw, "%s\t%s\t%s\t%t\n", p.ID, p.Title, p.Tech, p.Featured); err != nil {
				return err
			}
		}
		return tw.Flush()
	case "create", "edit":
		return runProjectForm(appCtx, ctrl, args[0], args[1:])
	case "delete":
		fs := flag.NewFlagSet("projects delete", flag.ContinueOnError)
		id := fs.String("id", "", "project id")
		yes := fs.Bool("yes", false, "confirm the delete")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("-id is required")
		}
		return confirmDelete(appCtx, ctrl, *id, *yes)
	default:
		return fmt.Errorf("unknown projects subcommand %q", args[0])
	}
}

func runProjectForm(appCtx *appContext, ctrl *client.ListController[model.Project], mode string, args []string) error {
	fs := flag.NewFlagSet("projects "+mode, flag.ContinueOnError)
	id := fs.String("id", "", "project id (edit only)")
	title := fs.String("title", "", "project title")
	desc := fs.String("desc", "", "project description")
	tech := fs.String("tech", "", "comma-separated tech stack")
	url := fs.String("url", "", "live URL")
	github := fs.String("github", "", "GitHub URL")
	image := fs.String("image", "", "image URL")
	featured := fs.Bool("featured", false, "feature on the landing page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := &client.ProjectForm{}
	if mode == "edit" {
		if *id == "" {
			return errors.New("-id is required for edit")
		}
		existing, err := appCtx.Client.GetProject(appCtx.Ctx, *id)
		if err != nil {
			return err
		}
		form.BeginEdit(existing)
	} else {
		form.BeginCreate()
	}

	// Flags override whatever BeginEdit loaded.
	if *title != "" {
		form.Title = *title
	}
	if *desc != "" {
		form.Description = *desc
	}
	if *tech != "" {
		form.Tech = *tech
	}
	if *url != "" {
		form.URL = *url
	}
	if *github != "" {
		form.GithubURL = *github
	}
	if *image != "" {
		form.ImageURL = *image
	}
	if *featured {
		form.Featured = true
	}

	project, err := form.Submit(appCtx.Ctx, appCtx.Client)
	if err != nil {
		return err
	}
	if err := ctrl.Load(appCtx.Ctx); err != nil {
		return err
	}
	return writef(os.Stdout, "%s %s (%d projects total)\n", mode+"d", project.ID, len(ctrl.Items()))
}

func runPosts(appCtx *appContext, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: portfolio-admin posts <list|create|edit|delete> [flags]")
	}
	if err := ensureAdmin(appCtx); err != nil {
		return err
	}

	ctrl := newPostController(appCtx.Client)
	switch args[0] {
	case "list":
		if err := ctrl.Load(appCtx.Ctx); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if err := writef(tw, "ID\tTITLE\tSLUG\tPUBLISHED\n"); err != nil {
			return err
		}
		for _, p := range ctrl.Items() {
			if err := writef(tw, "%s\t%s\t%s\t%t\n", p.ID, p.Title, p.Slug, p.Published); err != nil {
				return err
			}
		}
		return tw.Flush()
	case "create", "edit":
		return runPostForm(appCtx, ctrl, args[0], args[1:])
	case "delete":
		fs := flag.NewFlagSet("posts delete", flag.ContinueOnError)
		id := fs.String("id", "", "post id")
		yes := fs.Bool("yes", false, "confirm the delete")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("-id is required")
		}
		return confirmDelete(appCtx, ctrl, *id, *yes)
	default:
		return fmt.Errorf("unknown posts subcommand %q", args[0])
	}
}

func runPostForm(appCtx *appContext, ctrl *client.ListController[model.BlogPost], mode string, args []string) error {
	fs := flag.NewFlagSet("posts "+mode, flag.ContinueOnError)
	id := fs.String("id", "", "post id (edit only)")
	title := fs.String("title", "", "post title")
	summary := fs.String("summary", "", "short summary")
	contentFile := fs.String("content-file", "", "markdown file with the post body")
	image := fs.String("image", "", "cover image URL")
	publish := fs.Bool("publish", false, "publish the post")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := &client.PostForm{}
	if mode == "edit" {
		if *id == "" {
			return errors.New("-id is required for edit")
		}
		existing, err := appCtx.Client.GetPost(appCtx.Ctx, *id)
		if err != nil {
			return err
		}
		form.BeginEdit(existing)
	} else {
		form.BeginCreate()
	}

	if *title != "" {
		form.Title = *title
	}
	if *summary != "" {
		form.Summary = *summary
	}
	if *contentFile != "" {
		body, err := os.ReadFile(*contentFile)
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}
		form.Content = string(body)
	}
	if *image != "" {
		form.ImageURL = *image
	}
	if *publish {
		form.Published = true
	}

	if err := writef(os.Stdout, "slug: %s (~%d min read)\n", form.SlugPreview(), form.ReadTimePreview()); err != nil {
		return err
	}

	post, err := form.Submit(appCtx.Ctx, appCtx.Client)
	if err != nil {
		return err
	}
	if err := ctrl.Load(appCtx.Ctx); err != nil {
		return err
	}
	return writef(os.Stdout, "%s %s (%d posts total)\n", mode+"d", post.ID, len(ctrl.Items()))
}

func runSkills(appCtx *appContext, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: portfolio-admin skills <list|add|update|delete> [flags]")
	}
	if args[0] != "list" {
		if err := ensureAdmin(appCtx); err != nil {
			return err
		}
	}

	ctrl := newSkillController(appCtx.Client)
	switch args[0] {
	case "list":
		if err := ctrl.Load(appCtx.Ctx); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if err := writef(tw, "ID\tNAME\tCATEGORY\tLEVEL\n"); err != nil {
			return err
		}
		for _, s := range ctrl.Items() {
			if err := writef(tw, "%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Category, s.Level); err != nil {
				return err
			}
		}
		return tw.Flush()
	case "add":
		fs := flag.NewFlagSet("skills add", flag.ContinueOnError)
		name := fs.String("name", "", "skill name")
		category := fs.String("category", "", "skill category")
		level := fs.Int("level", 0, "proficiency 0-100")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" {
			return errors.New("-name is required")
		}
		if err := ctrl.Create(appCtx.Ctx, model.Skill{Name: *name, Category: *category, Level: *level}); err != nil {
			return err
		}
		return printNotification(ctrl.Notification())
	case "update":
		fs := flag.NewFlagSet("skills update", flag.ContinueOnError)
		id := fs.String("id", "", "skill id")
		name := fs.String("name", "", "skill name")
		category := fs.String("category", "", "skill category")
		level := fs.Int("level", -1, "proficiency 0-100")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("-id is required")
		}
		if err := ctrl.Load(appCtx.Ctx); err != nil {
			return err
		}
		var draft *model.Skill
		for _, s := range ctrl.Items() {
			if s.ID == *id {
				draft = &s
				break
			}
		}
		if draft == nil {
			return fmt.Errorf("skill %s not found", *id)
		}
		if *name != "" {
			draft.Name = *name
		}
		if *category != "" {
			draft.Category = *category
		}
		if *level >= 0 {
			draft.Level = *level
		}
		if err := ctrl.Update(appCtx.Ctx, *id, *draft); err != nil {
			return err
		}
		return printNotification(ctrl.Notification())
	case "delete":
		fs := flag.NewFlagSet("skills delete", flag.ContinueOnError)
		id := fs.String("id", "", "skill id")
		yes := fs.Bool("yes", false, "confirm the delete")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("-id is required")
		}
		return confirmDelete(appCtx, ctrl, *id, *yes)
	default:
		return fmt.Errorf("unknown skills subcommand %q", args[0])
	}
}
