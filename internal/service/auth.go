package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/data"
	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
)

// ErrInvalidCredentials is returned for bad email/password combinations.
// It deliberately does not distinguish unknown accounts from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Admins      core.AdminRepository
	Sessions    core.SessionStore
	TokenSecret []byte
	SessionTTL  time.Duration
	Time        core.TimeProvider
}

// AuthService issues and verifies bearer tokens for admin sessions.
// Tokens are HS256 JWTs carrying a session ID; the session record in the
// store is what makes a token revocable before its expiry.
type AuthService struct {
	admins   core.AdminRepository
	sessions core.SessionStore
	secret   []byte
	ttl      time.Duration
	clock    core.TimeProvider
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	clock := opts.Time
	if clock == nil {
		clock = realClock{}
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		admins:   opts.Admins,
		sessions: opts.Sessions,
		secret:   opts.TokenSecret,
		ttl:      ttl,
		clock:    clock,
	}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// LoginResult contains the issued token and the authenticated principal.
type LoginResult struct {
	Token     string               `json:"token"`
	Principal domainauth.Principal `json:"admin"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Login exchanges an email/password pair for a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)
	sess := domainauth.Session{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		Email:     admin.Email,
		ExpiresAt: expiresAt,
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	claims := sessionClaims{
		SessionID: sess.ID,
		Email:     admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResult{
		Token: token,
		Principal: domainauth.Principal{
			ID:          admin.ID,
			DisplayName: admin.DisplayName,
			Email:       admin.Email,
		},
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks a bearer token and returns the principal it belongs to.
// A token whose session has been revoked or expired fails verification.
func (s *AuthService) Verify(ctx context.Context, token string) (*domainauth.Principal, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, apperrors.Unauthorized("session revoked or expired")
	}
	if sess.AdminID != claims.Subject {
		return nil, apperrors.Unauthorized("session mismatch")
	}

	admin, err := s.admins.GetByID(ctx, sess.AdminID)
	if err != nil {
		if errors.Is(err, data.ErrAdminNotFound) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	return &domainauth.Principal{
		ID:          admin.ID,
		DisplayName: admin.DisplayName,
		Email:       admin.Email,
	}, nil
}

// Logout revokes the session behind a token. Unknown or malformed tokens
// are treated as already logged out.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	if delErr := s.sessions.Delete(ctx, claims.SessionID); delErr != nil {
		return fmt.Errorf("delete session: %w", delErr)
	}
	return nil
}

func (s *AuthService) parseToken(token string) (*sessionClaims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SeedAdmin creates the initial admin account if no account with the email
// exists yet. It is safe to call on every startup.
func (s *AuthService) SeedAdmin(ctx context.Context, displayName, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, data.ErrAdminNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.admins.Create(ctx, displayName, email, string(hash)); err != nil {
		if errors.Is(err, data.ErrAdminEmailExists) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
