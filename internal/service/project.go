package service

import (
	"context"

	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// ProjectServiceOptions groups dependencies for ProjectService.
type ProjectServiceOptions struct {
	Projects core.ProjectRepository
}

// ProjectService orchestrates portfolio project CRUD.
type ProjectService struct {
	projects core.ProjectRepository
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(opts ProjectServiceOptions) *ProjectService {
	return &ProjectService{projects: opts.Projects}
}

// Create creates a project.
func (s *ProjectService) Create(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
	return s.projects.Create(ctx, req)
}

// Update updates a project.
func (s *ProjectService) Update(ctx context.Context, id string, req model.UpdateProjectRequest) (*model.Project, error) {
	return s.projects.Update(ctx, id, req)
}

// Delete deletes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) (bool, error) {
	return s.projects.Delete(ctx, id)
}

// GetByID retrieves a project by ID.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]*model.Project, error) {
	return s.projects.List(ctx)
}

// ListFeatured returns projects flagged for the landing page.
func (s *ProjectService) ListFeatured(ctx context.Context) ([]*model.Project, error) {
	return s.projects.ListFeatured(ctx)
}
