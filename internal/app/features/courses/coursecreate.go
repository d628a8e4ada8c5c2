// internal/app/features/courses/coursecreate.go
package courses

import (
	"net/http"
	"strings"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"go.uber.org/zap"
)

type createCourseRequest struct {
	Name           string `json:"name"`
	EmailFrequency string `json:"email_frequency"`
	NumQuestions   int    `json:"num_questions"`
}

// HandleCreateCourse creates a course owned by the caller. The creator is
// enrolled as the first member; frequency defaults to daily and the batch
// size to the standard five questions.
func (h *Handler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var req createCourseRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create course")
	defer cancel()

	course, err := coursestore.New(h.DB).Create(ctx, models.Course{
		Name:           req.Name,
		CreatorID:      user.ID,
		EmailFrequency: req.EmailFrequency,
		NumQuestions:   req.NumQuestions,
	})
	if err != nil {
		// Frequency/batch validation errors come back from the store.
		h.Log.Warn("create course failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	httpjson.Write(w, http.StatusCreated, toCourseOutput(course))
}
