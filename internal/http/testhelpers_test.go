package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gnwofoke/portfolio-api/internal/data"
	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
	"github.com/gnwofoke/portfolio-api/internal/service"
)

// memProjectRepo is an in-memory project repository for router tests.
type memProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*model.Project
	seq      int
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[string]*model.Project)}
}

func (r *memProjectRepo) Create(_ context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.Title == req.Title {
			return nil, data.ErrProjectTitleExists
		}
	}
	r.seq++
	now := time.Now()
	project := &model.Project{
		ID:          fmt.Sprintf("project-%03d", r.seq),
		Title:       req.Title,
		Description: req.Description,
		Tech:        req.Tech,
		URL:         req.URL,
		GithubURL:   req.GithubURL,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.projects[project.ID] = project
	return project, nil
}

func (r *memProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, data.ErrProjectNotFound
	}
	return p, nil
}

func (r *memProjectRepo) List(_ context.Context) ([]*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProjectRepo) ListFeatured(_ context.Context) ([]*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Project, 0)
	for _, p := range r.projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) Update(_ context.Context, id string, req model.UpdateProjectRequest) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, data.ErrProjectNotFound
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

func (r *memProjectRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

func (r *memProjectRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.projects), nil
}

// memMessageRepo is an in-memory message repository for router tests.
type memMessageRepo struct {
	mu       sync.Mutex
	messages map[string]*model.Message
	seq      int
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{messages: make(map[string]*model.Message)}
}

func (r *memMessageRepo) Create(_ context.Context, req *model.CreateMessageRequest) (*model.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	msg := &model.Message{
		ID:        fmt.Sprintf("message-%03d", r.seq),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	r.messages[msg.ID] = msg
	return msg, nil
}

func (r *memMessageRepo) List(_ context.Context) ([]*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Message, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m)
	}
	return out, nil
}

func (r *memMessageRepo) MarkRead(_ context.Context, id string) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, data.ErrMessageNotFound
	}
	m.Read = true
	return m, nil
}

func (r *memMessageRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		return false, nil
	}
	delete(r.messages, id)
	return true, nil
}

func (r *memMessageRepo) Count(_ context.Context) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	unread := 0
	for _, m := range r.messages {
		if !m.Read {
			unread++
		}
	}
	return len(r.messages), unread, nil
}

// memPostRepo is an in-memory blog post repository for router tests.
type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]*model.BlogPost
	seq   int
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]*model.BlogPost)}
}

func (r *memPostRepo) Create(_ context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	slug := model.Slugify(req.Title)
	for _, p := range r.posts {
		if p.Slug == slug {
			return nil, data.ErrPostSlugExists
		}
	}
	r.seq++
	now := time.Now()
	post := &model.BlogPost{
		ID:        fmt.Sprintf("post-%03d", r.seq),
		Title:     req.Title,
		Slug:      slug,
		Summary:   req.Summary,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Published: req.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Published {
		post.PublishedAt = &now
	}
	r.posts[post.ID] = post
	return post, nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*model.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, data.ErrPostNotFound
	}
	return p, nil
}

func (r *memPostRepo) GetPublishedBySlug(_ context.Context, slug string) (*model.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug && p.Published {
			return p, nil
		}
	}
	return nil, data.ErrPostNotFound
}

func (r *memPostRepo) List(_ context.Context) ([]*model.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.BlogPost, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPostRepo) ListPublished(_ context.Context) ([]*model.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.BlogPost, 0)
	for _, p := range r.posts {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPostRepo) Update(_ context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, data.ErrPostNotFound
	}
	if req.Title != nil {
		p.Title = *req.Title
		p.Slug = model.Slugify(*req.Title)
	}
	if req.Published != nil {
		p.Published = *req.Published
		if p.Published && p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

func (r *memPostRepo) Count(_ context.Context) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	published := 0
	for _, p := range r.posts {
		if p.Published {
			published++
		}
	}
	return len(r.posts), published, nil
}

// countsOnlySkillRepoStub is an empty skill repository for router wiring.
type countsOnlySkillRepoStub struct{}

func (countsOnlySkillRepoStub) Create(context.Context, *model.CreateSkillRequest) (*model.Skill, error) {
	return nil, data.ErrSkillNotFound
}
func (countsOnlySkillRepoStub) GetByID(context.Context, string) (*model.Skill, error) {
	return nil, data.ErrSkillNotFound
}
func (countsOnlySkillRepoStub) List(context.Context) ([]*model.Skill, error) { return nil, nil }
func (countsOnlySkillRepoStub) Update(context.Context, string, model.UpdateSkillRequest) (*model.Skill, error) {
	return nil, data.ErrSkillNotFound
}
func (countsOnlySkillRepoStub) Delete(context.Context, string) (bool, error) { return false, nil }
func (countsOnlySkillRepoStub) Count(context.Context) (int, error)           { return 0, nil }

// memAdminRepo holds a single admin account for auth tests.
type memAdminRepo struct {
	admin *model.Admin
}

func (r *memAdminRepo) Create(_ context.Context, displayName, email, passwordHash string) (*model.Admin, error) {
	r.admin = &model.Admin{
		ID:           "admin-1",
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return r.admin, nil
}

func (r *memAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	if r.admin == nil || r.admin.Email != email {
		return nil, data.ErrAdminNotFound
	}
	return r.admin, nil
}

func (r *memAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	if r.admin == nil || r.admin.ID != id {
		return nil, data.ErrAdminNotFound
	}
	return r.admin, nil
}

func (r *memAdminRepo) Count(_ context.Context) (int, error) {
	if r.admin == nil {
		return 0, nil
	}
	return 1, nil
}

// memSessionStore is an in-memory session store for auth tests.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *memSessionStore) Save(_ context.Context, sess domainauth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, fmt.Errorf("session not found")
	}
	return sess, nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// newTestAuthService builds an AuthService with one seeded admin account.
func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	admins := &memAdminRepo{}
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = admins.Create(context.Background(), "Test Admin", "admin@example.com", string(hash))
	require.NoError(t, err)

	return service.NewAuthService(service.AuthServiceOptions{
		Admins:      admins,
		Sessions:    newMemSessionStore(),
		TokenSecret: []byte("test-secret"),
		SessionTTL:  time.Hour,
	})
}

// decodeEnvelope parses a response body into the API envelope.
func decodeEnvelope(t *testing.T, body io.Reader) (bool, json.RawMessage, string) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env.Success, env.Data, env.Message
}

// loginForToken runs the login endpoint against the router and returns a token.
func loginForToken(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	_, dataRaw, _ := decodeEnvelope(t, rec.Body)
	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(dataRaw, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}
