package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnwofoke/portfolio-api/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(RouterServices{
		Auth:     newTestAuthService(t),
		Projects: service.NewProjectService(service.ProjectServiceOptions{Projects: newMemProjectRepo()}),
		Blog:     service.NewBlogService(service.BlogServiceOptions{Posts: newMemPostRepo()}),
		Messages: service.NewMessageService(service.MessageServiceOptions{Messages: newMemMessageRepo()}),
		Skills:   service.NewSkillService(service.SkillServiceOptions{Skills: countsOnlySkillRepoStub{}}),
	})
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, handler http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	handler := newTestRouter(t)
	rec := doJSON(t, handler, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_PublicProjectListNeedsNoToken(t *testing.T) {
	handler := newTestRouter(t)
	rec := doJSON(t, handler, http.MethodGet, "/api/projects", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	success, _, _ := decodeEnvelope(t, rec.Body)
	assert.True(t, success)
}

func TestRouter_WritesRequireToken(t *testing.T) {
	handler := newTestRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/projects",
		`{"title":"Site","description":"d","tech":"go"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	success, _, msg := decodeEnvelope(t, rec.Body)
	assert.False(t, success)
	assert.NotEmpty(t, msg)
}

func TestRouter_CreateProjectWithToken(t *testing.T) {
	handler := newTestRouter(t)
	token := loginForToken(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/projects",
		`{"title":"Portfolio Site","description":"my site","tech":"go,postgres"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	success, dataRaw, _ := decodeEnvelope(t, rec.Body)
	assert.True(t, success)

	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(dataRaw, &created))
	assert.Equal(t, "Portfolio Site", created.Title)

	// The new project is visible on the public list.
	rec = doJSON(t, handler, http.MethodGet, "/api/projects/"+created.ID, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CreateProjectValidation(t *testing.T) {
	handler := newTestRouter(t)
	token := loginForToken(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/projects",
		`{"title":"","description":"d","tech":"go"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ContactFlow(t *testing.T) {
	handler := newTestRouter(t)

	// Anyone can submit a message.
	rec := doJSON(t, handler, http.MethodPost, "/api/contact",
		`{"name":"Visitor","email":"v@example.com","subject":"Hi","body":"Nice site"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	_, dataRaw, _ := decodeEnvelope(t, rec.Body)
	var created struct {
		ID   string `json:"id"`
		Read bool   `json:"read"`
	}
	require.NoError(t, json.Unmarshal(dataRaw, &created))
	assert.False(t, created.Read)

	// The inbox is private.
	rec = doJSON(t, handler, http.MethodGet, "/api/contact", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := loginForToken(t, handler)
	rec = doJSON(t, handler, http.MethodGet, "/api/contact", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Mark read returns the flipped record.
	rec = doJSON(t, handler, http.MethodPut, "/api/contact/"+created.ID+"/read", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	_, dataRaw, _ = decodeEnvelope(t, rec.Body)
	var updated struct {
		Read bool `json:"read"`
	}
	require.NoError(t, json.Unmarshal(dataRaw, &updated))
	assert.True(t, updated.Read)
}

func TestRouter_BlogListingSplitsAdminAndPublic(t *testing.T) {
	handler := newTestRouter(t)
	token := loginForToken(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/blog",
		`{"title":"Draft Post","summary":"s","content":"body"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/blog",
		`{"title":"Live Post","summary":"s","content":"body","published":true}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The bare collection is the full admin listing.
	rec = doJSON(t, handler, http.MethodGet, "/api/blog", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/blog", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	_, dataRaw, _ := decodeEnvelope(t, rec.Body)
	var all []struct {
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(dataRaw, &all))
	assert.Len(t, all, 2)

	// The published listing is public and hides the draft.
	rec = doJSON(t, handler, http.MethodGet, "/api/blog/published", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, dataRaw, _ = decodeEnvelope(t, rec.Body)
	var published []struct {
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(dataRaw, &published))
	require.Len(t, published, 1)
	assert.Equal(t, "live-post", published[0].Slug)

	// Published posts are readable by slug without a token.
	rec = doJSON(t, handler, http.MethodGet, "/api/blog/post/live-post", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, handler, http.MethodGet, "/api/blog/post/draft-post", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NullBodyIsBadRequest(t *testing.T) {
	handler := newTestRouter(t)
	token := loginForToken(t, handler)

	for _, tc := range []struct {
		path  string
		token string
	}{
		{path: "/api/projects", token: token},
		{path: "/api/blog", token: token},
		{path: "/api/skills", token: token},
		{path: "/api/contact"},
	} {
		rec := doJSON(t, handler, http.MethodPost, tc.path, `null`, tc.token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.path)

		success, _, msg := decodeEnvelope(t, rec.Body)
		assert.False(t, success, tc.path)
		assert.NotEmpty(t, msg, tc.path)
	}
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	handler := newTestRouter(t)
	token := loginForToken(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/auth/verify", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/logout", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/auth/verify", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/contact", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LoginRejectsBadPassword(t *testing.T) {
	handler := newTestRouter(t)
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
