// internal/app/features/courses/handler.go
package courses

import (
	"errors"
	"net/http"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/storage"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the courses feature.
// It holds the Mongo database, the document store, and the logger so the
// various handlers (CRUD, membership, uploads, questions, scores) share
// the same core dependencies.
type Handler struct {
	DB        *mongo.Database
	Documents *storage.Local
	Log       *zap.Logger
}

// NewHandler constructs a courses Handler. It is typically called from the
// bootstrap BuildHandler function.
func NewHandler(db *mongo.Database, documents *storage.Local, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Documents: documents,
		Log:       logger,
	}
}

// courseIDParam parses the {id} URL parameter. On failure it writes the
// error response and reports false.
func courseIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad course id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// loadCourse fetches the course for the request, writing 404/500 responses
// on failure.
func (h *Handler) loadCourse(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) (models.Course, bool) {
	course, err := coursestore.New(h.DB).GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, coursestore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "course not found")
		} else {
			h.Log.Error("load course failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		}
		return models.Course{}, false
	}
	return course, true
}

// requireCreator ensures the caller owns the course.
func requireCreator(w http.ResponseWriter, course models.Course, user *auth.Identity) bool {
	if course.CreatorID != user.ID {
		httpjson.Error(w, http.StatusForbidden, "only the course creator can do this")
		return false
	}
	return true
}

// requireMember ensures the caller belongs to the course.
func requireMember(w http.ResponseWriter, course models.Course, user *auth.Identity) bool {
	if !course.IsMember(user.ID) && course.CreatorID != user.ID {
		httpjson.Error(w, http.StatusForbidden, "you are not a member of this course")
		return false
	}
	return true
}

// courseOutput is the JSON shape of a course across the feature.
type courseOutput struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CreatorID      string          `json:"creator_id"`
	EmailFrequency string          `json:"email_frequency"`
	NumQuestions   int             `json:"num_questions"`
	Document       *documentOutput `json:"document,omitempty"`
	Members        []memberOutput  `json:"members"`
	ArchivedGroups int             `json:"archived_groups"`
	CurrentBatch   int             `json:"current_batch_size"`
}

type documentOutput struct {
	Name string `json:"name"`
}

type memberOutput struct {
	UserID         string `json:"user_id"`
	TotalCorrect   int    `json:"total_correct"`
	TotalQuestions int    `json:"total_questions"`
}

func toCourseOutput(c models.Course) courseOutput {
	out := courseOutput{
		ID:             c.ID.Hex(),
		Name:           c.Name,
		CreatorID:      c.CreatorID.Hex(),
		EmailFrequency: c.EmailFrequency,
		NumQuestions:   c.NumQuestions,
		Members:        make([]memberOutput, 0, len(c.Members)),
		ArchivedGroups: len(c.PreviousQuestions),
		CurrentBatch:   len(c.NewQuestionIDs),
	}
	if c.HasDocument() {
		out.Document = &documentOutput{Name: c.Document.Name}
	}
	for _, m := range c.Members {
		out.Members = append(out.Members, memberOutput{
			UserID:         m.UserID.Hex(),
			TotalCorrect:   m.TotalCorrect,
			TotalQuestions: m.TotalQuestions,
		})
	}
	return out
}
