// internal/app/features/courses/coursesettings.go
package courses

import (
	"net/http"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type updateConfigRequest struct {
	Name           string `json:"name"`
	EmailFrequency string `json:"email_frequency"`
	NumQuestions   int    `json:"num_questions"`
}

// HandleUpdateConfig applies a partial settings update (creator only).
// Omitted fields keep their current values. A frequency change takes effect
// at the next cadence run; it never triggers one.
func (h *Handler) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
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

	var req updateConfigRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update course config")
	defer cancel()

	store := coursestore.New(h.DB)
	if err := store.UpdateSettings(ctx, id, coursestore.SettingsUpdate{
		Name:           req.Name,
		EmailFrequency: req.EmailFrequency,
		NumQuestions:   req.NumQuestions,
	}); err != nil {
		h.Log.Warn("update course config failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := store.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload course failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}
	httpjson.Write(w, http.StatusOK, toCourseOutput(updated))
}
