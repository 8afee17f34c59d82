package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type SetWorkdayRequest struct {
	IsWorkday *bool  `json:"is_workday" validate:"required"`
	Note      string `json:"note" validate:"max=200"`
}

type WorkdayResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Workday *models.Workday `json:"workday"`
}

type WorkdaysResponse struct {
	Success  bool             `json:"success"`
	Workdays []models.Workday `json:"workdays"`
}

// ListWorkdays returns overrides in [from, to]. Both default to a window
// around the current month.
func (h *Handler) ListWorkdays(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := r.URL.Query().Get("from")
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0).Format(services.DateLayout)
	}
	to := r.URL.Query().Get("to")
	if to == "" {
		to = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 2, -1).Format(services.DateLayout)
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	workdays, err := h.admin.ListWorkdays(ctx, from, to)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch workdays")
		return
	}
	writeJSON(w, http.StatusOK, WorkdaysResponse{Success: true, Workdays: workdays})
}

// SetWorkday creates or replaces the override for {date}.
func (h *Handler) SetWorkday(w http.ResponseWriter, r *http.Request) {
	var req SetWorkdayRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	workday, err := h.admin.SetWorkday(ctx, chi.URLParam(r, "date"), *req.IsWorkday, req.Note)
	if err != nil {
		writeServiceError(w, err, "Failed to set workday")
		return
	}
	writeJSON(w, http.StatusOK, WorkdayResponse{Success: true, Message: "Workday saved", Workday: workday})
}

// DeleteWorkday removes the override for {date}.
func (h *Handler) DeleteWorkday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.admin.DeleteWorkday(ctx, chi.URLParam(r, "date")); err != nil {
		writeServiceError(w, err, "Failed to delete workday")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Workday override removed"})
}
