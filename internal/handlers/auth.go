package handlers

import (
	"net/http"
	"strings"

	"github.com/AnshRaj112/ojt-journal-backend/internal/middleware"
	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SigninResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Token    string       `json:"token,omitempty"`
	User     *models.User `json:"user,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type GuardResponse struct {
	Success bool `json:"success"`
	services.GateDecision
}

// Signin exchanges email and password for a session token.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, "Failed to sign in")
		return
	}

	writeJSON(w, http.StatusOK, SigninResponse{
		Success:  true,
		Message:  "Signed in successfully",
		Token:    result.Token,
		User:     result.User,
		Redirect: result.Redirect,
	})
}

// Signout ends the caller's session. It always succeeds.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	redirect := services.EntryPage
	if token := middleware.BearerToken(r); token != "" {
		redirect = h.auth.Logout(ctx, token)
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Signed out", Redirect: redirect})
}

// Me returns the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: middleware.UserFromContext(r.Context())})
}

// Guard tells a page whether it may render for the caller, and where to go
// otherwise. Query: path, role (admin|student, optional).
func (h *Handler) Guard(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		path = "/"
	}
	role := models.Role(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("role"))))
	if role != "" && role != models.RoleAdmin && role != models.RoleStudent {
		writeError(w, http.StatusBadRequest, "role must be admin or student")
		return
	}

	token := middleware.BearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, GuardResponse{Success: true, GateDecision: services.DecideGate(path, role, nil, false)})
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	decision, err := h.auth.Guard(ctx, token, path, role)
	if err != nil {
		writeServiceError(w, err, "Failed to check session")
		return
	}
	writeJSON(w, http.StatusOK, GuardResponse{Success: true, GateDecision: decision})
}
