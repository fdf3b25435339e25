package middleware

import (
	"context"
	"net/http"
	"strings"

	"amora_server/utils"
)

type contextKey string

const (
	emailKey contextKey = "email"
	adminKey contextKey = "isAdmin"
)

// RequireAuth validates the Bearer token and stores the caller's identity
// in the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Missing or malformed authorization header", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, claims.Email)
		ctx = context.WithValue(ctx, adminKey, claims.IsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route to admin sessions. Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAdmin, _ := r.Context().Value(adminKey).(bool); !isAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// EmailFromContext returns the authenticated caller's email, if any.
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}
