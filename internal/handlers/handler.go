package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

// Handler serves the JSON API on top of the services.
type Handler struct {
	auth     *services.AuthService
	journals *services.JournalService
	admin    *services.AdminService
	hub      *services.EventHub

	timeout  time.Duration
	validate *validator.Validate
}

func New(auth *services.AuthService, journals *services.JournalService, admin *services.AdminService, hub *services.EventHub, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		auth:     auth,
		journals: journals,
		admin:    admin,
		hub:      hub,
		timeout:  timeout,
		validate: validator.New(),
	}
}

// requestContext bounds store calls made on behalf of r.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
