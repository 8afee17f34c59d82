package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/ojt-journal-backend/internal/middleware"
)

const maxAttachmentSize = 10 << 20 // 10MB

// AttachToMyJournal uploads the "file" form field and links it to the
// caller's entry for {date}.
func (h *Handler) AttachToMyJournal(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAttachmentSize+1<<20)
	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	if header.Size > maxAttachmentSize {
		writeError(w, http.StatusBadRequest, "File must be 10MB or smaller")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	journal, err := h.journals.AttachToJournal(ctx, user.ID, chi.URLParam(r, "date"), file)
	if err != nil {
		writeServiceError(w, err, "Failed to upload file")
		return
	}
	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Message: "File uploaded successfully", Journal: journal})
}
