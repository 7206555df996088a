package service

import (
	"context"
	"fmt"

	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// StatsServiceOptions groups dependencies for StatsService.
type StatsServiceOptions struct {
	Projects core.ProjectRepository
	Posts    core.BlogPostRepository
	Messages core.MessageRepository
	Skills   core.SkillRepository
}

// StatsService aggregates content counts for the admin dashboard.
type StatsService struct {
	projects core.ProjectRepository
	posts    core.BlogPostRepository
	messages core.MessageRepository
	skills   core.SkillRepository
}

// NewStatsService constructs a new StatsService.
func NewStatsService(opts StatsServiceOptions) *StatsService {
	return &StatsService{
		projects: opts.Projects,
		posts:    opts.Posts,
		messages: opts.Messages,
		skills:   opts.Skills,
	}
}

// Snapshot returns current counts across all content types.
func (s *StatsService) Snapshot(ctx context.Context) (*model.Stats, error) {
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	posts, published, err := s.posts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	messages, unread, err := s.messages.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	skills, err := s.skills.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count skills: %w", err)
	}

	return &model.Stats{
		Projects:       projects,
		Posts:          posts,
		PublishedPosts: published,
		Messages:       messages,
		UnreadMessages: unread,
		Skills:         skills,
	}, nil
}
