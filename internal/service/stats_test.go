package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// countsOnlyProjectRepo implements core.ProjectRepository with fixed counts.
type countsOnlyProjectRepo struct{ n int }

func (r countsOnlyProjectRepo) Create(context.Context, *model.CreateProjectRequest) (*model.Project, error) {
	return nil, nil
}
func (r countsOnlyProjectRepo) GetByID(context.Context, string) (*model.Project, error) {
	return nil, nil
}
func (r countsOnlyProjectRepo) List(context.Context) ([]*model.Project, error) { return nil, nil }
func (r countsOnlyProjectRepo) ListFeatured(context.Context) ([]*model.Project, error) {
	return nil, nil
}
func (r countsOnlyProjectRepo) Update(context.Context, string, model.UpdateProjectRequest) (*model.Project, error) {
	return nil, nil
}
func (r countsOnlyProjectRepo) Delete(context.Context, string) (bool, error) { return false, nil }
func (r countsOnlyProjectRepo) Count(context.Context) (int, error)           { return r.n, nil }

type countsOnlyMessageRepo struct{ total, unread int }

func (r countsOnlyMessageRepo) Create(context.Context, *model.CreateMessageRequest) (*model.Message, error) {
	return nil, nil
}
func (r countsOnlyMessageRepo) List(context.Context) ([]*model.Message, error) { return nil, nil }
func (r countsOnlyMessageRepo) MarkRead(context.Context, string) (*model.Message, error) {
	return nil, nil
}
func (r countsOnlyMessageRepo) Delete(context.Context, string) (bool, error) { return false, nil }
func (r countsOnlyMessageRepo) Count(context.Context) (int, int, error) {
	return r.total, r.unread, nil
}

type countsOnlySkillRepo struct{ n int }

func (r countsOnlySkillRepo) Create(context.Context, *model.CreateSkillRequest) (*model.Skill, error) {
	return nil, nil
}
func (r countsOnlySkillRepo) GetByID(context.Context, string) (*model.Skill, error) { return nil, nil }
func (r countsOnlySkillRepo) List(context.Context) ([]*model.Skill, error)          { return nil, nil }
func (r countsOnlySkillRepo) Update(context.Context, string, model.UpdateSkillRequest) (*model.Skill, error) {
	return nil, nil
}
func (r countsOnlySkillRepo) Delete(context.Context, string) (bool, error) { return false, nil }
func (r countsOnlySkillRepo) Count(context.Context) (int, error)           { return r.n, nil }

func TestStatsService_Snapshot(t *testing.T) {
	posts := newStubPostRepo()
	_, err := posts.Create(context.Background(), &model.CreateBlogPostRequest{
		Title: "Published Post", Summary: "s", Content: "hi", Published: true,
	})
	require.NoError(t, err)
	_, err = posts.Create(context.Background(), &model.CreateBlogPostRequest{
		Title: "Draft Post", Summary: "s", Content: "hi",
	})
	require.NoError(t, err)

	svc := NewStatsService(StatsServiceOptions{
		Projects: countsOnlyProjectRepo{n: 4},
		Posts:    posts,
		Messages: countsOnlyMessageRepo{total: 7, unread: 2},
		Skills:   countsOnlySkillRepo{n: 12},
	})

	stats, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.Stats{
		Projects:       4,
		Posts:          2,
		PublishedPosts: 1,
		Messages:       7,
		UnreadMessages: 2,
		Skills:         12,
	}, stats)
}
