// internal/app/features/studygroups/handler.go
package studygroups

import (
	"errors"
	"net/http"

	studygroupstore "github.com/dalemusser/coursepulse/internal/app/store/studygroups"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the study groups feature.
// Study groups are reusable member rosters; merging one into a course
// lives with the courses feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a studygroups Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

func groupIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad study group id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// loadOwnedGroup fetches the group and verifies the caller owns it.
func (h *Handler) loadOwnedGroup(w http.ResponseWriter, r *http.Request, id primitive.ObjectID, user *auth.Identity) (models.StudyGroup, bool) {
	group, err := studygroupstore.New(h.DB).GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, studygroupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "study group not found")
		} else {
			h.Log.Error("load study group failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		}
		return models.StudyGroup{}, false
	}
	if group.CreatorID != user.ID {
		httpjson.Error(w, http.StatusForbidden, "only the study group creator can do this")
		return models.StudyGroup{}, false
	}
	return group, true
}

type groupOutput struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatorID string   `json:"creator_id"`
	MemberIDs []string `json:"member_ids"`
}

func toGroupOutput(g models.StudyGroup) groupOutput {
	out := groupOutput{
		ID:        g.ID.Hex(),
		Name:      g.Name,
		CreatorID: g.CreatorID.Hex(),
		MemberIDs: make([]string, 0, len(g.MemberIDs)),
	}
	for _, id := range g.MemberIDs {
		out.MemberIDs = append(out.MemberIDs, id.Hex())
	}
	return out
}
