// internal/app/features/courses/courselist.go
package courses

import (
	"net/http"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeCourseList returns every course the caller created or belongs to.
func (h *Handler) ServeCourseList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list courses")
	defer cancel()

	list, err := coursestore.New(h.DB).ListForUser(ctx, user.ID)
	if err != nil {
		h.Log.Error("list courses failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	out := make([]courseOutput, 0, len(list))
	for _, c := range list {
		out = append(out, toCourseOutput(c))
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"courses": out})
}
