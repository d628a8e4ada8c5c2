// internal/app/features/courses/members.go
package courses

import (
	"errors"
	"net/http"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	userstore "github.com/dalemusser/coursepulse/internal/app/store/users"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/normalize"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const searchLimit = 20

type addMemberRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// HandleAddMember enrolls one user in the course (creator only). The user
// can be named by id or by email; new members start with zero score.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
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

	var req addMemberRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add course member")
	defer cancel()

	var memberID primitive.ObjectID
	switch {
	case req.UserID != "":
		oid, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "bad user id")
			return
		}
		if _, err := userstore.New(h.DB).GetByID(ctx, oid); err != nil {
			if errors.Is(err, userstore.ErrNotFound) {
				httpjson.Error(w, http.StatusNotFound, "user not found")
				return
			}
			h.Log.Error("member lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
			return
		}
		memberID = oid
	case req.Email != "":
		u, err := userstore.New(h.DB).GetByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, userstore.ErrNotFound) {
				httpjson.Error(w, http.StatusNotFound, "user not found")
				return
			}
			h.Log.Error("member lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
			return
		}
		memberID = u.ID
	default:
		httpjson.Error(w, http.StatusBadRequest, "user_id or email is required")
		return
	}

	if err := coursestore.New(h.DB).AddMember(ctx, id, memberID); err != nil {
		if errors.Is(err, coursestore.ErrAlreadyMember) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("add member failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"status":  "added",
		"user_id": memberID.Hex(),
	})
}

// ServeSearchUsers finds users by name or email for the member picker.
func (h *Handler) ServeSearchUsers(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(r.URL.Query().Get("q"))
	if q == "" {
		httpjson.Write(w, http.StatusOK, map[string]any{"users": []any{}})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "search users")
	defer cancel()

	found, err := userstore.New(h.DB).Search(ctx, q, searchLimit)
	if err != nil {
		h.Log.Error("user search failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	type userHit struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}
	out := make([]userHit, 0, len(found))
	for _, u := range found {
		out = append(out, userHit{ID: u.ID.Hex(), FullName: u.FullName, Email: u.Email})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"users": out})
}
