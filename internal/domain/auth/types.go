package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/adapter concerns.

import "time"

// Principal is the authenticated administrator identity returned by
// login and verify. It is immutable once obtained and replaced
// wholesale on each login.
type Principal struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// Session is the server-side record persisted for an issued token.
// ID is the opaque session identifier carried in the token's sid claim;
// deleting the record revokes the token.
type Session struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Status describes the client-side verification state of a session.
// The zero value is StatusUnverified.
type Status int

const (
	// StatusUnverified means Initialize has not run yet.
	StatusUnverified Status = iota
	// StatusVerifying means the startup verification call is in flight.
	StatusVerifying
	// StatusVerified means a principal is present and the credential checked out.
	StatusVerified
	// StatusUnauthenticated means there is no usable credential.
	StatusUnauthenticated
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusUnverified:
		return "unverified"
	case StatusVerifying:
		return "verifying"
	case StatusVerified:
		return "verified"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}
