package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type RegisterStudentRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	OJTStart     string `json:"ojt_start" validate:"omitempty,datetime=2006-01-02"`
	WorkSchedule []int  `json:"work_schedule" validate:"omitempty,dive,min=0,max=6"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type UpdateScheduleRequest struct {
	WorkSchedule []int `json:"work_schedule" validate:"dive,min=0,max=6"`
}

type ReviewJournalRequest struct {
	Remarks  string `json:"remarks" validate:"max=5000"`
	Reviewed *bool  `json:"reviewed" validate:"required"`
}

type StudentsResponse struct {
	Success  bool          `json:"success"`
	Students []models.User `json:"students"`
	Total    int           `json:"total"`
}

type StudentResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Student *models.User `json:"student"`
}

type StatsResponse struct {
	Success bool `json:"success"`
	*services.AdminStats
}

// GetStudents lists students. Query: active=true|false (default true).
func (h *Handler) GetStudents(w http.ResponseWriter, r *http.Request) {
	active := true
	if v := r.URL.Query().Get("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "active must be true or false")
			return
		}
		active = parsed
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	students, err := h.admin.GetAllStudents(ctx, active)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch students")
		return
	}
	writeJSON(w, http.StatusOK, StudentsResponse{Success: true, Students: students, Total: len(students)})
}

// RegisterStudent enrolls a new student account.
func (h *Handler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req RegisterStudentRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	student, err := h.admin.RegisterStudent(ctx, services.RegisterStudentInput{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		OJTStart:     req.OJTStart,
		WorkSchedule: req.WorkSchedule,
	})
	if err != nil {
		writeServiceError(w, err, "Failed to register student")
		return
	}
	writeJSON(w, http.StatusCreated, StudentResponse{Success: true, Message: "Student registered", Student: student})
}

// UpdateStudentStatus activates or deactivates {id}.
func (h *Handler) UpdateStudentStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.admin.UpdateUserStatus(ctx, chi.URLParam(r, "id"), *req.IsActive); err != nil {
		writeServiceError(w, err, "Failed to update student status")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Student status updated"})
}

// UpdateStudentSchedule replaces {id}'s working weekdays.
func (h *Handler) UpdateStudentSchedule(w http.ResponseWriter, r *http.Request) {
	var req UpdateScheduleRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.admin.UpdateWorkSchedule(ctx, chi.URLParam(r, "id"), req.WorkSchedule); err != nil {
		writeServiceError(w, err, "Failed to update work schedule")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Work schedule updated"})
}

// GetStudentProgress reports progress for {id}.
func (h *Handler) GetStudentProgress(w http.ResponseWriter, r *http.Request) {
	h.writeProgress(w, r, chi.URLParam(r, "id"))
}

// GetAllJournals lists submitted journals. Query: status=all|pending|reviewed.
func (h *Handler) GetAllJournals(w http.ResponseWriter, r *http.Request) {
	status, err := services.ParseJournalStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, err, "Invalid status")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	journals, err := h.admin.GetAllJournals(ctx, status)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch journals")
		return
	}
	writeJSON(w, http.StatusOK, JournalsResponse{Success: true, Journals: journals, Total: len(journals)})
}

// ReviewJournal records remarks and the reviewed flag on journal {id}.
func (h *Handler) ReviewJournal(w http.ResponseWriter, r *http.Request) {
	var req ReviewJournalRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.admin.ReviewJournal(ctx, chi.URLParam(r, "id"), req.Remarks, *req.Reviewed); err != nil {
		writeServiceError(w, err, "Failed to review journal")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Journal reviewed"})
}

// GetStats returns the admin dashboard counters.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	stats, err := h.admin.GetAdminStats(ctx)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch stats")
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{Success: true, AdminStats: stats})
}
