// Package core defines the contracts between the service layer and its adapters.
package core

import (
	"context"
	"io"
	"time"

	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Service implementations should depend on these interfaces, not concrete implementations.

// ProjectRepository defines the interface for project data operations.
type ProjectRepository interface {
	Create(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	ListFeatured(ctx context.Context) ([]*model.Project, error)
	Update(ctx context.Context, id string, req model.UpdateProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// BlogPostRepository defines the interface for blog post data operations.
type BlogPostRepository interface {
	Create(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error)
	GetByID(ctx context.Context, id string) (*model.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context) ([]*model.BlogPost, error)
	ListPublished(ctx context.Context) ([]*model.BlogPost, error)
	Update(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (total int, published int, err error)
}

// MessageRepository defines the interface for contact message data operations.
type MessageRepository interface {
	Create(ctx context.Context, req *model.CreateMessageRequest) (*model.Message, error)
	List(ctx context.Context) ([]*model.Message, error)
	MarkRead(ctx context.Context, id string) (*model.Message, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (total int, unread int, err error)
}

// SkillRepository defines the interface for skill data operations.
type SkillRepository interface {
	Create(ctx context.Context, req *model.CreateSkillRequest) (*model.Skill, error)
	GetByID(ctx context.Context, id string) (*model.Skill, error)
	List(ctx context.Context) ([]*model.Skill, error)
	Update(ctx context.Context, id string, req model.UpdateSkillRequest) (*model.Skill, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// AdminRepository defines the interface for admin account data operations.
type AdminRepository interface {
	Create(ctx context.Context, displayName, email, passwordHash string) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetByID(ctx context.Context, id string) (*model.Admin, error)
	Count(ctx context.Context) (int, error)
}

// SessionStore defines the interface for server-side session persistence.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// PutImageParams groups parameters for ImageStore.Put.
type PutImageParams struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageStore defines the interface for uploaded image persistence.
type ImageStore interface {
	// Put stores an image and returns the public URL it will be served from.
	Put(ctx context.Context, params PutImageParams) (string, error)
}

// TimeProvider abstracts the clock for deterministic tests.
type TimeProvider interface {
	Now() time.Time
}
