package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type contextKey string

const userContextKey contextKey = "user"

// Authenticator resolves a session token to its user.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// BearerToken extracts the session token from the Authorization header.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// UserFromContext returns the user attached by RequireRole.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// WithUser attaches user to ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// RequireRole rejects requests without a valid session (401) or whose user
// has a different role (403). An empty role admits any signed-in user. The
// body carries the page the client should go to instead.
func RequireRole(auth Authenticator, role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				deny(w, http.StatusUnauthorized, services.ErrNotAuthenticated.Error(), services.EntryPage)
				return
			}

			user, err := auth.CurrentUser(r.Context(), token)
			if err != nil {
				if errors.Is(err, services.ErrNotAuthenticated) || errors.Is(err, services.ErrUserNotFound) {
					deny(w, http.StatusUnauthorized, services.ErrNotAuthenticated.Error(), services.EntryPage)
					return
				}
				log.Printf("auth: session lookup failed: %v", err)
				deny(w, http.StatusInternalServerError, "Failed to verify session", "")
				return
			}

			if role != "" && user.Role != role {
				deny(w, http.StatusForbidden, "You do not have access to this resource", services.DashboardPath(user.Role))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func deny(w http.ResponseWriter, status int, message, redirect string) {
	body := map[string]interface{}{
		"success": false,
		"message": message,
	}
	if redirect != "" {
		body["redirect"] = redirect
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
