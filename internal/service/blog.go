package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// BlogServiceOptions groups dependencies for BlogService.
type BlogServiceOptions struct {
	Posts core.BlogPostRepository
}

// BlogService orchestrates blog post CRUD and public rendering.
type BlogService struct {
	posts core.BlogPostRepository
}

// NewBlogService constructs a new BlogService.
func NewBlogService(opts BlogServiceOptions) *BlogService {
	return &BlogService{posts: opts.Posts}
}

// RenderedPost is a published post with its markdown content rendered to HTML.
type RenderedPost struct {
	model.BlogPost
	HTML        string `json:"html"`
	ReadMinutes int    `json:"read_minutes"`
}

// Create creates a blog post. The slug is derived from the title.
func (s *BlogService) Create(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	return s.posts.Create(ctx, req)
}

// Update updates a blog post. A title change re-derives the slug.
func (s *BlogService) Update(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	return s.posts.Update(ctx, id, req)
}

// Delete deletes a blog post.
func (s *BlogService) Delete(ctx context.Context, id string) (bool, error) {
	return s.posts.Delete(ctx, id)
}

// GetByID retrieves a post by ID, drafts included.
func (s *BlogService) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

// List returns all posts including drafts, newest first.
func (s *BlogService) List(ctx context.Context) ([]*model.BlogPost, error) {
	return s.posts.List(ctx)
}

// ListPublished returns published posts, most recently published first.
func (s *BlogService) ListPublished(ctx context.Context) ([]*model.BlogPost, error) {
	return s.posts.ListPublished(ctx)
}

// GetPublishedBySlug retrieves a published post by slug and renders its
// markdown content to HTML for the public site.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*RenderedPost, error) {
	post, err := s.posts.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if convertErr := goldmark.Convert([]byte(post.Content), &buf); convertErr != nil {
		return nil, fmt.Errorf("render post content: %w", convertErr)
	}

	return &RenderedPost{
		BlogPost:    *post,
		HTML:        buf.String(),
		ReadMinutes: post.ReadingMinutes(),
	}, nil
}
