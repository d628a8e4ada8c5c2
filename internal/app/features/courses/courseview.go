// internal/app/features/courses/courseview.go
package courses

import (
	"net/http"

	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
)

// ServeCourseView returns one course. Members and the creator may view it.
func (h *Handler) ServeCourseView(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, ok := courseIDParam(w, r)
	if !ok {
		return
	}
	course, ok := h.loadCourse(w, r, id)
	if !ok {
		return
	}
	if !requireMember(w, course, user) {
		return
	}

	httpjson.Write(w, http.StatusOK, toCourseOutput(course))
}
