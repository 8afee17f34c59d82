package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/ojt-journal-backend/internal/middleware"
	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type SaveJournalRequest struct {
	Content   string `json:"content" validate:"max=20000"`
	Submitted bool   `json:"submitted"`
}

type JournalResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Journal *models.Journal `json:"journal"`
}

type JournalsResponse struct {
	Success  bool             `json:"success"`
	Journals []models.Journal `json:"journals"`
	Total    int              `json:"total"`
}

type ProgressResponse struct {
	Success bool `json:"success"`
	*services.Progress
}

type WorkdayCheckResponse struct {
	Success   bool   `json:"success"`
	Date      string `json:"date"`
	IsWorkday bool   `json:"is_workday"`
}

// GetMyJournals lists the caller's journals, newest date first.
func (h *Handler) GetMyJournals(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	ctx, cancel := h.requestContext(r)
	defer cancel()

	journals, err := h.journals.GetStudentJournals(ctx, user.ID)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch journals")
		return
	}
	writeJSON(w, http.StatusOK, JournalsResponse{Success: true, Journals: journals, Total: len(journals)})
}

// GetMyJournal returns the caller's entry for {date}; journal is null when
// nothing has been written yet.
func (h *Handler) GetMyJournal(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	ctx, cancel := h.requestContext(r)
	defer cancel()

	journal, err := h.journals.GetJournal(ctx, user.ID, chi.URLParam(r, "date"))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch journal")
		return
	}
	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Journal: journal})
}

// SaveMyJournal stores a draft or final submission for {date}.
func (h *Handler) SaveMyJournal(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req SaveJournalRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	journal, err := h.journals.SaveJournal(ctx, user.ID, chi.URLParam(r, "date"), req.Content, req.Submitted)
	if err != nil {
		writeServiceError(w, err, "Failed to save journal")
		return
	}

	message := "Draft saved"
	if req.Submitted {
		message = "Journal submitted"
	}
	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Message: message, Journal: journal})
}

// GetMyProgress reports the caller's submitted and missing workdays.
func (h *Handler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	h.writeProgress(w, r, user.ID)
}

func (h *Handler) writeProgress(w http.ResponseWriter, r *http.Request, userID string) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	progress, err := h.journals.GetStudentProgress(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "Failed to compute progress")
		return
	}
	writeJSON(w, http.StatusOK, ProgressResponse{Success: true, Progress: progress})
}

// CheckMyWorkday answers whether {date} is a workday for the caller.
func (h *Handler) CheckMyWorkday(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	date := chi.URLParam(r, "date")

	ctx, cancel := h.requestContext(r)
	defer cancel()

	isWorkday, err := h.journals.CheckWorkday(ctx, date, user.ID)
	if err != nil {
		writeServiceError(w, err, "Failed to check workday")
		return
	}
	writeJSON(w, http.StatusOK, WorkdayCheckResponse{Success: true, Date: date, IsWorkday: isWorkday})
}
