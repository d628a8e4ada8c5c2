// internal/app/features/studygroups/groupcrud.go
package studygroups

import (
	"errors"
	"net/http"
	"strings"

	studygroupstore "github.com/dalemusser/coursepulse/internal/app/store/studygroups"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

// HandleCreateGroup creates a study group owned by the caller.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var req createGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	memberIDs, ok := parseObjectIDs(w, req.MemberIDs)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create study group")
	defer cancel()

	group, err := studygroupstore.New(h.DB).Create(ctx, models.StudyGroup{
		Name:      req.Name,
		CreatorID: user.ID,
		MemberIDs: memberIDs,
	})
	if err != nil {
		h.Log.Error("create study group failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Write(w, http.StatusCreated, toGroupOutput(group))
}

// ServeGroupList returns the caller's study groups.
func (h *Handler) ServeGroupList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list study groups")
	defer cancel()

	list, err := studygroupstore.New(h.DB).ListByCreator(ctx, user.ID)
	if err != nil {
		h.Log.Error("list study groups failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	out := make([]groupOutput, 0, len(list))
	for _, g := range list {
		out = append(out, toGroupOutput(g))
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"study_groups": out})
}

// ServeGroupView returns one study group (creator only).
func (h *Handler) ServeGroupView(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	group, ok := h.loadOwnedGroup(w, r, id, user)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, toGroupOutput(group))
}

type updateGroupRequest struct {
	Name            string   `json:"name"`
	AddMemberIDs    []string `json:"add_member_ids"`
	RemoveMemberIDs []string `json:"remove_member_ids"`
}

// HandleUpdateGroup renames the group and adjusts its roster in one write.
func (h *Handler) HandleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	if _, ok := h.loadOwnedGroup(w, r, id, user); !ok {
		return
	}

	var req updateGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	add, ok := parseObjectIDs(w, req.AddMemberIDs)
	if !ok {
		return
	}
	remove, ok := parseObjectIDs(w, req.RemoveMemberIDs)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update study group")
	defer cancel()

	store := studygroupstore.New(h.DB)
	if err := store.Update(ctx, id, strings.TrimSpace(req.Name), add, remove); err != nil {
		h.Log.Error("update study group failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	updated, err := store.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload study group failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}
	httpjson.Write(w, http.StatusOK, toGroupOutput(updated))
}

type addGroupMemberRequest struct {
	UserID string `json:"user_id"`
}

// HandleAddMember appends one user to the roster.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	if _, ok := h.loadOwnedGroup(w, r, id, user); !ok {
		return
	}

	var req addGroupMemberRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad user id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add study group member")
	defer cancel()

	if err := studygroupstore.New(h.DB).AddMember(ctx, id, memberID); err != nil {
		if errors.Is(err, studygroupstore.ErrAlreadyMember) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("add study group member failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "added"})
}

// HandleDeleteGroup removes a study group. Courses it was merged into keep
// the members it contributed.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	if _, ok := h.loadOwnedGroup(w, r, id, user); !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete study group")
	defer cancel()

	if err := studygroupstore.New(h.DB).Delete(ctx, id); err != nil {
		h.Log.Error("delete study group failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "delete failed")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseObjectIDs(w http.ResponseWriter, hexes []string) ([]primitive.ObjectID, bool) {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, hx := range hexes {
		id, err := primitive.ObjectIDFromHex(hx)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "bad user id: "+hx)
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}
