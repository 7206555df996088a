// Package client is the Go client for the portfolio API. All requests go
// through a single gateway that attaches the stored bearer token and
// normalizes errors; higher-level session, guard, and controller types
// build on it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
)

// Client is the API gateway. It never retries; a 401 from any endpoint
// clears the stored credential before the error is returned.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialStore
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	Credentials CredentialStore
	// HTTPClient overrides the default client (10s timeout) when set.
	HTTPClient *http.Client
}

// New creates a Client for the API at BaseURL.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	creds := opts.Credentials
	if creds == nil {
		creds = NewMemoryCredentials()
	}
	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		http:    httpClient,
		creds:   creds,
	}
}

// Credentials returns the credential slot the client attaches tokens from.
func (c *Client) Credentials() CredentialStore {
	return c.creds
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do performs one API call. in (when non-nil) is sent as JSON; out (when
// non-nil) receives the decoded envelope data.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Transport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode == http.StatusUnauthorized {
		// The credential is dead; drop it before surfacing the error.
		_ = c.creds.Clear()
		return apperrors.Unauthorized(messageOr(env.Message, "unauthorized"))
	}

	if decodeErr != nil {
		return apperrors.Transport(fmt.Errorf("decode response: %w", decodeErr))
	}

	if !env.Success {
		return errorForStatus(resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperrors.Transport(fmt.Errorf("decode data: %w", err))
		}
	}
	return nil
}

func errorForStatus(status int, message string) error {
	switch status {
	case http.StatusNotFound:
		return apperrors.NotFound(messageOr(message, "not found"))
	case http.StatusConflict:
		return apperrors.Conflict(messageOr(message, "conflict"))
	case http.StatusBadRequest:
		return apperrors.Validation(messageOr(message, "invalid request"))
	default:
		return apperrors.Internal(messageOr(message, fmt.Sprintf("server error (status %d)", status)))
	}
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

// LoginData is the auth exchange response.
type LoginData struct {
	Token     string               `json:"token"`
	Principal domainauth.Principal `json:"admin"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Login exchanges credentials for a bearer token. The token is returned,
// not stored; the session layer decides whether to persist it.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginData, error) {
	in := map[string]string{"email": email, "password": password}
	var out LoginData
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifySession checks the stored token and returns the admin it belongs to.
func (c *Client) VerifySession(ctx context.Context) (*domainauth.Principal, error) {
	var out domainauth.Principal
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogoutSession revokes the session on the server.
func (c *Client) LogoutSession(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListProjects returns all projects.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFeaturedProjects returns projects flagged for the landing page.
func (c *Client) ListFeaturedProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject returns one project by ID.
func (c *Client) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject updates a project.
func (c *Client) UpdateProject(ctx context.Context, id string, req model.UpdateProjectRequest) (*model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}

// PublishedPost is a published post with server-rendered HTML.
type PublishedPost struct {
	model.BlogPost
	HTML        string `json:"html"`
	ReadMinutes int    `json:"read_minutes"`
}

// ListPublishedPosts returns published posts.
func (c *Client) ListPublishedPosts(ctx context.Context) ([]model.BlogPost, error) {
	var out []model.BlogPost
	if err := c.do(ctx, http.MethodGet, "/api/blog/published", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAllPosts returns every post including drafts. Admin only.
func (c *Client) ListAllPosts(ctx context.Context) ([]model.BlogPost, error) {
	var out []model.BlogPost
	if err := c.do(ctx, http.MethodGet, "/api/blog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPost returns one post by ID, drafts included. Admin only.
func (c *Client) GetPost(ctx context.Context, id string) (*model.BlogPost, error) {
	var out model.BlogPost
	if err := c.do(ctx, http.MethodGet, "/api/blog/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPublishedPost returns a published post by slug with rendered HTML.
func (c *Client) GetPublishedPost(ctx context.Context, slug string) (*PublishedPost, error) {
	var out PublishedPost
	if err := c.do(ctx, http.MethodGet, "/api/blog/post/"+slug, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost creates a blog post.
func (c *Client) CreatePost(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	var out model.BlogPost
	if err := c.do(ctx, http.MethodPost, "/api/blog", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost updates a blog post.
func (c *Client) UpdatePost(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	var out model.BlogPost
	if err := c.do(ctx, http.MethodPut, "/api/blog/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost deletes a blog post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/blog/"+id, nil, nil)
}

// SubmitMessage sends a contact form submission.
func (c *Client) SubmitMessage(ctx context.Context, req *model.CreateMessageRequest) (*model.Message, error) {
	var out model.Message
	if err := c.do(ctx, http.MethodPost, "/api/contact", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMessages returns the admin inbox.
func (c *Client) ListMessages(ctx context.Context) ([]model.Message, error) {
	var out []model.Message
	if err := c.do(ctx, http.MethodGet, "/api/contact", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkMessageRead flags a message as read.
func (c *Client) MarkMessageRead(ctx context.Context, id string) (*model.Message, error) {
	var out model.Message
	if err := c.do(ctx, http.MethodPut, "/api/contact/"+id+"/read", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/contact/"+id, nil, nil)
}

// ListSkills returns all skills.
func (c *Client) ListSkills(ctx context.Context) ([]model.Skill, error) {
	var out []model.Skill
	if err := c.do(ctx, http.MethodGet, "/api/skills", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSkill creates a skill.
func (c *Client) CreateSkill(ctx context.Context, req *model.CreateSkillRequest) (*model.Skill, error) {
	var out model.Skill
	if err := c.do(ctx, http.MethodPost, "/api/skills", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSkill updates a skill.
func (c *Client) UpdateSkill(ctx context.Context, id string, req model.UpdateSkillRequest) (*model.Skill, error) {
	var out model.Skill
	if err := c.do(ctx, http.MethodPut, "/api/skills/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSkill deletes a skill.
func (c *Client) DeleteSkill(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/skills/"+id, nil, nil)
}

// Stats returns the admin dashboard counts.
func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var out model.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage uploads an image and returns the URL it is served from.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload form")
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "read image")
	}
	if err := mw.Close(); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "finish upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		URL string `json:"url"`
	}
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
