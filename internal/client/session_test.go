package client

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
)

func TestSessionManager_InitializeRunsOnce(t *testing.T) {
	var verifyCalls atomic.Int32
	c, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		verifyCalls.Add(1)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"admin-1","display_name":"Owner","email":"owner@example.com"}}`))
	})
	require.NoError(t, creds.Set("tok"))

	sessions := NewSessionManager(c)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessions.Initialize(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), verifyCalls.Load())
	snap := sessions.Snapshot()
	assert.Equal(t, domainauth.StatusVerified, snap.Status)
	require.NotNil(t, snap.Principal)
	assert.Equal(t, "owner@example.com", snap.Principal.Email)
}

func TestSessionManager_InitializeAbsorbsFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
	})

	sessions := NewSessionManager(c)
	sessions.Initialize(context.Background())

	snap := sessions.Snapshot()
	assert.Equal(t, domainauth.StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.Principal)
}

func TestSessionManager_LoginSuccessVerifiesAndStoresToken(t *testing.T) {
	c, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"fresh-token","admin":{"id":"admin-1","display_name":"Owner","email":"owner@example.com"}}}`))
	})

	sessions := NewSessionManager(c)
	require.NoError(t, sessions.Login(context.Background(), "owner@example.com", "hunter2"))

	snap := sessions.Snapshot()
	assert.Equal(t, domainauth.StatusVerified, snap.Status)
	require.NotNil(t, snap.Principal)
	assert.Equal(t, "admin-1", snap.Principal.ID)
	assert.Equal(t, "fresh-token", creds.Token())

	// A protected view renders, no redirect.
	assert.Equal(t, RenderProtected, Decide(snap.Status))
}

func TestSessionManager_LoginFailureStaysUnauthenticated(t *testing.T) {
	c, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
	})

	sessions := NewSessionManager(c)
	err := sessions.Login(context.Background(), "owner@example.com", "wrong")
	require.Error(t, err)

	snap := sessions.Snapshot()
	assert.Equal(t, domainauth.StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.Principal)
	assert.Empty(t, creds.Token())

	// The caller shows the error; the guard would redirect only on navigation.
	assert.Equal(t, RedirectToLogin, Decide(snap.Status))
}

func TestSessionManager_LogoutIdempotent(t *testing.T) {
	c, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok","admin":{"id":"admin-1","email":"owner@example.com"}}}`))
		default:
			_, _ = w.Write([]byte(`{"success":true}`))
		}
	})

	sessions := NewSessionManager(c)
	require.NoError(t, sessions.Login(context.Background(), "owner@example.com", "hunter2"))
	require.NotEmpty(t, creds.Token())

	sessions.Logout(context.Background())
	assert.Empty(t, creds.Token())
	assert.Equal(t, domainauth.StatusUnauthenticated, sessions.Snapshot().Status)

	// Logging out again changes nothing and does not panic.
	sessions.Logout(context.Background())
	assert.Equal(t, domainauth.StatusUnauthenticated, sessions.Snapshot().Status)
}
