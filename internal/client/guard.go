package client

import (
	"context"

	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
)

// GuardDecision is what a protected view should do for a session status.
type GuardDecision int

const (
	// ShowLoading means the session is still being verified.
	ShowLoading GuardDecision = iota
	// RenderProtected means the caller may show protected content.
	RenderProtected
	// RedirectToLogin means there is no usable session.
	RedirectToLogin
)

func (d GuardDecision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case RenderProtected:
		return "protected"
	case RedirectToLogin:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decide maps a session status to a guard decision. Content is never
// rendered while verification is in flight, and a session that has not
// even started verifying gets the loading state too: redirecting before
// the stored credential has been checked would bounce a valid session.
func Decide(status domainauth.Status) GuardDecision {
	switch status {
	case domainauth.StatusUnverified, domainauth.StatusVerifying:
		return ShowLoading
	case domainauth.StatusVerified:
		return RenderProtected
	default:
		return RedirectToLogin
	}
}

// Guard gates access to protected operations behind a session manager.
type Guard struct {
	sessions *SessionManager
}

// NewGuard creates a Guard over the session manager.
func NewGuard(sessions *SessionManager) *Guard {
	return &Guard{sessions: sessions}
}

// Check initializes the session if that has not happened yet and returns
// the decision for the current status.
func (g *Guard) Check(ctx context.Context) GuardDecision {
	g.sessions.Initialize(ctx)
	return Decide(g.sessions.Snapshot().Status)
}
