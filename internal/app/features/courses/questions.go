// internal/app/features/courses/questions.go
package courses

import (
	"net/http"
	"strconv"

	questionstore "github.com/dalemusser/coursepulse/internal/app/store/questions"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type questionOutput struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
	Answer  string   `json:"answer"`
}

func toQuestionOutputs(qs []models.Question) []questionOutput {
	out := make([]questionOutput, 0, len(qs))
	for _, q := range qs {
		out = append(out, questionOutput{
			ID:      q.ID.Hex(),
			Text:    q.Text,
			Choices: q.Choices,
			Answer:  q.Answer,
		})
	}
	return out
}

// ServeCurrentQuestions returns the course's current question batch.
// Members and the creator may read it; an empty batch is a normal state
// for a course that has not had a digest run yet.
func (h *Handler) ServeCurrentQuestions(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "load current questions")
	defer cancel()

	qs, err := questionstore.New(h.DB).GetByIDs(ctx, course.NewQuestionIDs)
	if err != nil {
		h.Log.Error("load questions failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"questions": toQuestionOutputs(qs)})
}

// ServeQuestionsForUser is the notification deep-link target: the current
// batch plus the named member's running score. Only that member or the
// course creator may use it.
func (h *Handler) ServeQuestionsForUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	id, ok := courseIDParam(w, r)
	if !ok {
		return
	}
	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad user id")
		return
	}

	course, ok := h.loadCourse(w, r, id)
	if !ok {
		return
	}
	if caller.ID != targetID && caller.ID != course.CreatorID {
		httpjson.Error(w, http.StatusForbidden, "you can only view your own questions")
		return
	}

	idx := course.MemberIndex(targetID)
	if idx < 0 {
		httpjson.Error(w, http.StatusNotFound, "user is not a member of this course")
		return
	}
	member := course.Members[idx]

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "load member questions")
	defer cancel()

	qs, err := questionstore.New(h.DB).GetByIDs(ctx, course.NewQuestionIDs)
	if err != nil {
		h.Log.Error("load questions failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"course_name": course.Name,
		"questions":   toQuestionOutputs(qs),
		"score": map[string]int{
			"total_correct":   member.TotalCorrect,
			"total_questions": member.TotalQuestions,
		},
	})
}

// ServePreviousQuestions returns archived question batches, newest first.
// Supports ?limit= and ?offset= over the archive sequence; each group comes
// back with its questions resolved.
func (h *Handler) ServePreviousQuestions(w http.ResponseWriter, r *http.Request) {
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

	limit := queryInt(r, "limit", 10)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	// Archive order is oldest-first on the course; serve newest-first.
	groups := course.PreviousQuestions
	total := len(groups)

	type groupOutput struct {
		GroupID    string           `json:"group_id"`
		ArchivedAt string           `json:"archived_at"`
		Questions  []questionOutput `json:"questions"`
	}
	out := make([]groupOutput, 0, limit)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "load previous questions")
	defer cancel()

	qstore := questionstore.New(h.DB)
	for i := total - 1 - offset; i >= 0 && len(out) < limit; i-- {
		g := groups[i]
		qs, err := qstore.GetByIDs(ctx, g.QuestionIDs)
		if err != nil {
			h.Log.Error("load archived questions failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
			return
		}
		out = append(out, groupOutput{
			GroupID:    g.GroupID,
			ArchivedAt: g.ArchivedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Questions:  toQuestionOutputs(qs),
		})
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"groups": out,
		"total":  total,
		"offset": offset,
	})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
