package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
)

func TestDecide_CoversEveryStatus(t *testing.T) {
	tests := []struct {
		status domainauth.Status
		want   GuardDecision
	}{
		{status: domainauth.StatusUnverified, want: ShowLoading},
		{status: domainauth.StatusVerifying, want: ShowLoading},
		{status: domainauth.StatusVerified, want: RenderProtected},
		{status: domainauth.StatusUnauthenticated, want: RedirectToLogin},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.status))
		})
	}
}

func TestDecide_NeverRendersWhileVerifying(t *testing.T) {
	assert.NotEqual(t, RenderProtected, Decide(domainauth.StatusVerifying))
}

func TestDecide_NeverRedirectsBeforeVerificationStarts(t *testing.T) {
	assert.NotEqual(t, RedirectToLogin, Decide(domainauth.StatusUnverified))
}

func TestGuard_CheckInitializesSession(t *testing.T) {
	c, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"admin-1","email":"owner@example.com"}}`))
	})
	_ = creds.Set("tok")

	guard := NewGuard(NewSessionManager(c))
	assert.Equal(t, RenderProtected, guard.Check(context.Background()))
}

func TestGuard_CheckRedirectsWithoutSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
	})

	guard := NewGuard(NewSessionManager(c))
	assert.Equal(t, RedirectToLogin, guard.Check(context.Background()))
}
