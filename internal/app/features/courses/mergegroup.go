// internal/app/features/courses/mergegroup.go
package courses

import (
	"errors"
	"net/http"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	studygroupstore "github.com/dalemusser/coursepulse/internal/app/store/studygroups"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mergeStudyGroupRequest struct {
	StudyGroupID string `json:"study_group_id"`
}

// HandleMergeStudyGroup enrolls every member of a study group into the
// course (creator only). Users who already belong keep their score
// counters; only the missing ones are added.
func (h *Handler) HandleMergeStudyGroup(w http.ResponseWriter, r *http.Request) {
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

	var req mergeStudyGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.StudyGroupID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad study group id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "merge study group")
	defer cancel()

	group, err := studygroupstore.New(h.DB).GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, studygroupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "study group not found")
			return
		}
		h.Log.Error("load study group failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	added, err := coursestore.New(h.DB).MergeMembers(ctx, id, group.MemberIDs)
	if err != nil {
		h.Log.Error("merge study group failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"status": "merged",
		"added":  added,
	})
}
