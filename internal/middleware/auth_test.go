package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type fakeAuth map[string]*models.User

func (f fakeAuth) CurrentUser(_ context.Context, token string) (*models.User, error) {
	if token == "broken" {
		return nil, errors.New("redis down")
	}
	user, ok := f[token]
	if !ok {
		return nil, services.ErrNotAuthenticated
	}
	return user, nil
}

func TestRequireRole(t *testing.T) {
	auth := fakeAuth{
		"admin-token":   {ID: "a1", Role: models.RoleAdmin},
		"student-token": {ID: "s1", Role: models.RoleStudent},
	}

	var seen *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireRole(auth, models.RoleAdmin)(next)

	tests := []struct {
		name     string
		header   string
		status   int
		redirect string
	}{
		{"no token", "", http.StatusUnauthorized, services.EntryPage},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, services.EntryPage},
		{"wrong role", "Bearer student-token", http.StatusForbidden, services.StudentDashboard},
		{"store failure", "Bearer broken", http.StatusInternalServerError, ""},
		{"admin", "bearer admin-token", http.StatusNoContent, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "a1", seen.ID)
				return
			}
			assert.Nil(t, seen)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			if tc.redirect != "" {
				assert.Equal(t, tc.redirect, body["redirect"])
			}
		})
	}
}

func TestLoginRateLimitOnlyGuardsSignin(t *testing.T) {
	h := LoginRateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, LoginPath, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodGet, "/api/journals", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
