// Package auth provides bearer-token authentication and role-based
// authorization for Filebridge. Callers present a session token as
// "Authorization: Bearer <token>"; the middleware resolves it to an
// identity and places it on the request context, and RequireRole gates
// role-restricted routes behind that identity.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/domain"
)

// SessionResolver resolves a presented session token to an account.
type SessionResolver interface {
	// Resolve returns the account a session token belongs to, or
	// domain.ErrUnauthenticated if the token is unknown.
	Resolve(ctx context.Context, token string) (*domain.Account, error)
}

// SessionResolverFunc adapts a function to the SessionResolver interface.
type SessionResolverFunc func(ctx context.Context, token string) (*domain.Account, error)

// Resolve calls f(ctx, token).
func (f SessionResolverFunc) Resolve(ctx context.Context, token string) (*domain.Account, error) {
	return f(ctx, token)
}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	// Username is the account's unique login name.
	Username string

	// Role is the account's permission level.
	Role domain.Role
}

// contextKey is a private type for context keys defined in this package.
type contextKey int

// identityKey is the context key the middleware stores the Identity under.
const identityKey contextKey = iota

// ParseBearerToken extracts the token from an Authorization header.
// A missing header, a scheme other than Bearer, or an empty token all
// fail with domain.ErrUnauthenticated.
func ParseBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrUnauthenticated
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", domain.ErrUnauthenticated
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrUnauthenticated
	}

	return token, nil
}

// Middleware authenticates every request with the resolver and stores
// the resulting Identity on the request context. Requests without a
// valid bearer token are rejected with 401 before reaching the handler.
func Middleware(resolver SessionResolver, logger zerolog.Logger) func(http.Handler) http.Handler {
	log := logger.With().Str("component", "auth").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ParseBearerToken(r)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			account, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				log.Debug().Str("path", r.URL.Path).Msg("session token rejected")
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			identity := &Identity{
				Username: account.Username,
				Role:     account.Role,
			}
			r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects authenticated requests whose identity does not
// carry the given role. The 403 here is distinct from the middleware's
// 401: re-authenticating will not help a caller with the wrong role.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := FromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			if identity.Role != role {
				writeAuthError(w, http.StatusForbidden, "insufficient role for this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// FromContext retrieves the Identity stored by the middleware.
func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// RequireIdentity retrieves the Identity or fails with
// domain.ErrUnauthenticated. Handlers behind the middleware can assume
// success; this exists for the defensive path.
func RequireIdentity(ctx context.Context) (*Identity, error) {
	identity, ok := FromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}

// writeAuthError writes a JSON error response.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
