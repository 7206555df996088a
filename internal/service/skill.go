package service

import (
	"context"

	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// SkillServiceOptions groups dependencies for SkillService.
type SkillServiceOptions struct {
	Skills core.SkillRepository
}

// SkillService orchestrates skill CRUD.
type SkillService struct {
	skills core.SkillRepository
}

// NewSkillService constructs a new SkillService.
func NewSkillService(opts SkillServiceOptions) *SkillService {
	return &SkillService{skills: opts.Skills}
}

// Create creates a skill.
func (s *SkillService) Create(ctx context.Context, req *model.CreateSkillRequest) (*model.Skill, error) {
	return s.skills.Create(ctx, req)
}

// Update updates a skill.
func (s *SkillService) Update(ctx context.Context, id string, req model.UpdateSkillRequest) (*model.Skill, error) {
	return s.skills.Update(ctx, id, req)
}

// Delete deletes a skill.
func (s *SkillService) Delete(ctx context.Context, id string) (bool, error) {
	return s.skills.Delete(ctx, id)
}

// GetByID retrieves a skill by ID.
func (s *SkillService) GetByID(ctx context.Context, id string) (*model.Skill, error) {
	return s.skills.GetByID(ctx, id)
}

// List returns all skills grouped by category.
func (s *SkillService) List(ctx context.Context) ([]*model.Skill, error) {
	return s.skills.List(ctx)
}
