package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/ojt-journal-backend/internal/handlers"
	"github.com/AnshRaj112/ojt-journal-backend/internal/middleware"
	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

func SetupRoutes(r chi.Router, h *handlers.Handler, auth *services.AuthService, staticDir string) {
	// Auth routes
	r.Post("/api/auth/signin", h.Signin)
	r.Post("/api/auth/signout", h.Signout)
	r.Get("/api/auth/guard", h.Guard)
	r.With(middleware.RequireRole(auth, "")).Get("/api/auth/me", h.Me)

	// Student routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth, models.RoleStudent))

		r.Get("/api/journals", h.GetMyJournals)
		r.Get("/api/journals/{date}", h.GetMyJournal)
		r.Put("/api/journals/{date}", h.SaveMyJournal)
		r.Post("/api/journals/{date}/attachments", h.AttachToMyJournal)
		r.Get("/api/progress", h.GetMyProgress)
		r.Get("/api/workdays/{date}", h.CheckMyWorkday)
	})

	// Admin routes
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth, models.RoleAdmin))

		r.Get("/students", h.GetStudents)
		r.Post("/students", h.RegisterStudent)
		r.Put("/students/{id}/status", h.UpdateStudentStatus)
		r.Put("/students/{id}/schedule", h.UpdateStudentSchedule)
		r.Get("/students/{id}/progress", h.GetStudentProgress)

		r.Get("/journals", h.GetAllJournals)
		r.Put("/journals/{id}/review", h.ReviewJournal)
		r.Get("/stats", h.GetStats)

		r.Get("/workdays", h.ListWorkdays)
		r.Put("/workdays/{date}", h.SetWorkday)
		r.Delete("/workdays/{date}", h.DeleteWorkday)
	})

	// Live events (authenticates itself; browsers pass ?token=)
	r.Get("/ws/events", h.Events)

	if staticDir != "" {
		r.Handle("/*", staticFiles(staticDir))
	}
}

// staticFiles serves the client pages, answering "/" with index.html.
func staticFiles(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(dir, filepath.Clean(r.URL.Path))); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		fs.ServeHTTP(w, r)
	})
}
