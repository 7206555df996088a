package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
)

// verifierFunc adapts a function to the TokenVerifier interface.
type verifierFunc func(ctx context.Context, token string) (*domainauth.Principal, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (*domainauth.Principal, error) {
	return f(ctx, token)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123"},
		{name: "case insensitive scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "scheme only", header: "Bearer ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(req))
		})
	}
}

func TestRequireAdmin_NoToken(t *testing.T) {
	verifier := verifierFunc(func(context.Context, string) (*domainauth.Principal, error) {
		t.Fatal("verifier must not be called without a token")
		return nil, nil
	})

	handler := RequireAdmin(verifier)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not be called")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contact", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	success, _, msg := decodeEnvelope(t, rec.Body)
	assert.False(t, success)
	assert.Equal(t, "authentication required", msg)
}

func TestRequireAdmin_BadToken(t *testing.T) {
	verifier := verifierFunc(func(context.Context, string) (*domainauth.Principal, error) {
		return nil, errors.New("nope")
	})

	handler := RequireAdmin(verifier)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_SetsPrincipal(t *testing.T) {
	want := &domainauth.Principal{ID: "admin-1", Email: "admin@example.com"}
	verifier := verifierFunc(func(_ context.Context, token string) (*domainauth.Principal, error) {
		require.Equal(t, "good-token", token)
		return want, nil
	})

	var got *domainauth.Principal
	handler := RequireAdmin(verifier)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = GetPrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, want, got)
}
