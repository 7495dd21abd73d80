package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Auth resolves the session token (cookie or bearer header) through the
// gate and attaches the identity to the request context. Requests
// without a valid session pass through anonymously; enforcement happens
// at the route guards.
func Auth(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := TokenFromRequest(req)
			if token == "" {
				next.ServeHTTP(w, req)
				return
			}

			identity, err := gate.Identify(req.Context(), token)
			if err != nil {
				next.ServeHTTP(w, req)
				return
			}

			ctx := context.WithValue(req.Context(), identityContextKey, identity)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func IdentityFromContext(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityContextKey).(*auth.Identity)
	return identity
}

// TokenFromRequest prefers the session cookie, falling back to a bearer
// header for API clients.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("session"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
