// internal/app/features/courses/coursedelete.go
package courses

import (
	"net/http"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDeleteCourse removes a course (creator only). The stored document
// bytes are cleaned up best-effort after the course row is gone; question
// rows referenced by the course stay behind as unreferenced data.
func (h *Handler) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete course")
	defer cancel()

	if err := coursestore.New(h.DB).Delete(ctx, id); err != nil {
		h.Log.Error("delete course failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "delete failed")
		return
	}

	if course.HasDocument() {
		if err := h.Documents.Remove(course.Document.FilePath); err != nil {
			h.Log.Warn("removing course document after delete failed",
				zap.String("course", course.Name),
				zap.Error(err))
		}
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
