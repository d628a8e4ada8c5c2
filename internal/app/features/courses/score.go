// internal/app/features/courses/score.go
package courses

import (
	"errors"
	"net/http"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type submitScoreRequest struct {
	Correct   int `json:"correct"`
	Questions int `json:"questions"`
}

// HandleSubmitScore adds one quiz attempt to the caller's running totals
// for the course. Totals only ever grow; there is no per-batch bookkeeping
// and re-answering the same batch counts again.
func (h *Handler) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, ok := courseIDParam(w, r)
	if !ok {
		return
	}

	var req submitScoreRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Correct < 0 || req.Questions < 0 {
		httpjson.Error(w, http.StatusBadRequest, "correct and questions must be non-negative")
		return
	}
	if req.Correct > req.Questions {
		httpjson.Error(w, http.StatusBadRequest, "correct cannot exceed questions")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "submit score")
	defer cancel()

	err := coursestore.New(h.DB).SubmitScore(ctx, id, user.ID, req.Correct, req.Questions)
	if err != nil {
		switch {
		case errors.Is(err, coursestore.ErrNotFound):
			httpjson.Error(w, http.StatusNotFound, "course not found")
		case errors.Is(err, coursestore.ErrMemberNotFound):
			httpjson.Error(w, http.StatusForbidden, "you are not a member of this course")
		default:
			h.Log.Error("submit score failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		}
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"status": "recorded"})
}
