// internal/app/features/courses/upload.go
package courses

import (
	"net/http"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"go.uber.org/zap"
)

// maxUploadBytes caps course document uploads (32 MiB).
const maxUploadBytes = 32 << 20

// HandleUploadDocument replaces the course's source document (creator
// only). The new file is stored and committed to the course before the old
// file's bytes are removed, so a crash mid-replace never leaves the course
// pointing at nothing. Questions are unaffected until the next digest run.
func (h *Handler) HandleUploadDocument(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, ok := courseIDParam(w, r)
	if !ok {
		return
	}
	course, ok := h.loadCourse(w, r, id)
	if !ok {
		return
	}
	if !requireCreator(w, course, user) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "could not parse upload (32 MiB limit)")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, `multipart field "document" is required`)
		return
	}
	defer file.Close()

	key, err := h.Documents.Save(header.Filename, file)
	if err != nil {
		h.Log.Error("storing uploaded document failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not store document")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "course document upload")
	defer cancel()

	previous, err := coursestore.New(h.DB).SetDocument(ctx, id, models.Document{
		Name:     header.Filename,
		FilePath: key,
	})
	if err != nil {
		// The course write failed; don't leave orphaned bytes behind.
		_ = h.Documents.Remove(key)
		h.Log.Error("assigning document to course failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not assign document")
		return
	}

	if previous != nil && previous.FilePath != "" {
		if err := h.Documents.Remove(previous.FilePath); err != nil {
			h.Log.Warn("removing replaced document failed",
				zap.String("course", course.Name),
				zap.Error(err))
		}
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"status":   "uploaded",
		"document": header.Filename,
	})
}
