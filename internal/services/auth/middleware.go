package auth

import (
	"context"
	"net/http"
	"strings"

	"food-order-system/internal/httputil"
	"food-order-system/internal/models"
)

type claimsKey struct{}

// ClaimsFrom returns the authenticated claims attached to the context.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}

// Middleware verifies bearer tokens and injects claims into the request
// context for downstream handlers.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate rejects requests without a valid bearer access token.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httputil.WriteErrorMessage(w, http.StatusUnauthorized,
				"missing bearer token", httputil.RequestID(r.Context()))
			return
		}

		claims, err := m.tokens.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httputil.WriteErrorMessage(w, http.StatusUnauthorized,
				"token is invalid or expired", httputil.RequestID(r.Context()))
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole authenticates and additionally rejects callers whose role
// does not match.
func (m *Middleware) RequireRole(role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.Role != role {
			httputil.WriteErrorMessage(w, http.StatusForbidden,
				"role is not permitted to perform this action", httputil.RequestID(r.Context()))
			return
		}
		next(w, r)
	})
}
