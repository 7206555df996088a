package client

import (
	"context"
	"sync"

	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
)

// SessionManager owns the process-wide session state. Initialize runs at
// most once; Login and Logout are the only other mutators. Readers always
// see a consistent principal/status pair.
type SessionManager struct {
	mu        sync.Mutex
	client    *Client
	initOnce  sync.Once
	status    domainauth.Status
	principal *domainauth.Principal
}

// Snapshot is a consistent view of the session at one point in time.
type Snapshot struct {
	Status    domainauth.Status
	Principal *domainauth.Principal
}

// NewSessionManager creates a session manager in the Unverified state.
func NewSessionManager(c *Client) *SessionManager {
	return &SessionManager{client: c, status: domainauth.StatusUnverified}
}

// Initialize resolves the stored credential into a session exactly once.
// Any failure, transport or auth, lands in Unauthenticated; the caller
// never sees an error from startup verification.
func (s *SessionManager) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.mu.Lock()
		s.status = domainauth.StatusVerifying
		s.mu.Unlock()

		principal, err := s.client.VerifySession(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.status = domainauth.StatusUnauthenticated
			s.principal = nil
			return
		}
		s.status = domainauth.StatusVerified
		s.principal = principal
	})
}

// Snapshot returns the current principal and status.
func (s *SessionManager) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, Principal: s.principal}
}

// Login exchanges credentials, persists the token, and moves the session
// to Verified. On failure the session is Unauthenticated and the error is
// returned for the caller to surface.
func (s *SessionManager) Login(ctx context.Context, email, password string) error {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		s.status = domainauth.StatusUnauthenticated
		s.principal = nil
		s.mu.Unlock()
		return err
	}

	if err := s.client.Credentials().Set(result.Token); err != nil {
		return err
	}

	s.mu.Lock()
	s.status = domainauth.StatusVerified
	principal := result.Principal
	s.principal = &principal
	s.mu.Unlock()
	return nil
}

// Logout revokes the session server-side on a best-effort basis, then
// always clears local state and the stored credential. Calling it when
// already logged out is a no-op.
func (s *SessionManager) Logout(ctx context.Context) {
	// A dead token already clears the credential via the 401 path.
	_ = s.client.LogoutSession(ctx)
	_ = s.client.Credentials().Clear()

	s.mu.Lock()
	s.status = domainauth.StatusUnauthenticated
	s.principal = nil
	s.mu.Unlock()
}
