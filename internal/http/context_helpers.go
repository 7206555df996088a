package httpx

import (
	"context"

	domainauth "github.com/gnwofoke/portfolio-api/internal/domain/auth"
)

type contextKey string

const principalContextKey contextKey = "principal"

// SetPrincipalInContext stores the authenticated principal in the context.
func SetPrincipalInContext(ctx context.Context, p *domainauth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// GetPrincipalFromContext retrieves the authenticated principal, or nil.
func GetPrincipalFromContext(ctx context.Context) *domainauth.Principal {
	p, _ := ctx.Value(principalContextKey).(*domainauth.Principal)
	return p
}
