package middleware

import (
	"context"
	"net/http"
	"strings"

	"spendwise/internal/shared/auth"
)

type ContextKey string

const (
	UserIDKey    ContextKey = "user_id"
	EmailKey     ContextKey = "email"
	RequestIDKey ContextKey = "request_id"
)

// Auth resolves the acting user from a bearer token or the access_token
// cookie. A request without a token passes through anonymously unless
// required is set. A token that fails validation is always rejected.
func Auth(jwt *auth.JWT, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			// Try HttpOnly cookie first (browser requests)
			if cookie, err := r.Cookie("access_token"); err == nil {
				token = cookie.Value
			} else if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				// Fall back to Authorization header (API clients)
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
					writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
					return
				}
				token = strings.TrimSpace(parts[1])
			}

			if token == "" {
				if required {
					writeError(w, http.StatusUnauthorized, "Authentication required")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := jwt.Validate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom returns the user resolved by Auth.
func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
