// Package middleware provides HTTP middlewares for authentication and
// logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenResolver maps a bearer token to a user id. An empty result
// means the token is unknown.
type TokenResolver func(token string) (int64, bool)

// BearerAuth enforces bearer-token authentication on every route
// except the /api/auth group, which must stay reachable for login and
// registration.
//
// On success the resolved user id is stored in the request context so
// handlers can identify the caller.
func BearerAuth(resolve TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/auth/") {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			userID, ok := resolve(token)
			if !ok {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user id from the
// request context. Returns 0 if not found.
func GetUserIDFromContext(ctx context.Context) int64 {
	val := ctx.Value(userKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}
