package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidSchedule):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrJournalNotFound),
		errors.Is(err, services.ErrWorkdayNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrJournalReviewed),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotWorkday):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUploadsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError answers with the sentinel's message, or fallback for
// unexpected failures so store details are not leaked.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, fallback)
		return
	}
	writeError(w, status, rootMessage(err))
}

// rootMessage returns the message of the sentinel wrapped inside err.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		services.ErrInvalidDate, services.ErrInvalidStatus, services.ErrInvalidSchedule,
		services.ErrInvalidCredentials, services.ErrNotAuthenticated,
		services.ErrUserNotFound, services.ErrJournalNotFound, services.ErrWorkdayNotFound,
		services.ErrJournalReviewed, services.ErrEmailTaken, services.ErrNotWorkday,
		services.ErrUploadsDisabled,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// decodeBody reads a JSON body into dst and runs its validate tags.
func (h *Handler) decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("Invalid request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("Invalid fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}
