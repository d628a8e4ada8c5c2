package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/coursepulse/internal/app/system/digest"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/dalemusser/coursepulse/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubCourses struct{ courses []models.Course }

func (s *stubCourses) ListByFrequency(ctx context.Context, frequency string) ([]models.Course, error) {
	var out []models.Course
	for _, c := range s.courses {
		if c.EmailFrequency == frequency {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCourses) ReplaceQuestionState(ctx context.Context, courseID primitive.ObjectID, groups []models.QuestionGroup, currentIDs []primitive.ObjectID) error {
	return nil
}

type stubQuestions struct{}

func (stubQuestions) InsertBatch(ctx context.Context, questions []models.Question) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, len(questions))
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return ids, nil
}

type stubUsers struct{}

func (stubUsers) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	return map[primitive.ObjectID]models.User{}, nil
}

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, documentPath string, count int) ([]digest.Candidate, error) {
	return []digest.Candidate{{Text: "Q?", Choices: []string{"a", "b"}, Answer: "a"}}, nil
}

type stubSender struct{}

func (stubSender) Send(ctx context.Context, to, subject, htmlBody string) error { return nil }

func newTestHandler(courses []models.Course) *Handler {
	p := digest.NewProcessor(&stubCourses{courses: courses}, stubQuestions{}, stubUsers{},
		nil, stubGenerator{}, stubSender{}, digest.Config{BaseURL: "http://pulse.test"}, zap.NewNop())
	return NewHandler(p, zap.NewNop())
}

func TestHandleRunDigest(t *testing.T) {
	courses := []models.Course{{
		ID:             primitive.NewObjectID(),
		Name:           "Daily Course",
		EmailFrequency: models.FrequencyDaily,
		NumQuestions:   3,
		Document:       &models.Document{Name: "notes.txt", FilePath: "/docs/notes"},
	}}
	h := newTestHandler(courses)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/digest/daily", nil)
	req = testutil.SignedInAs(req, primitive.NewObjectID(), "Admin", "admin@example.com")
	req = testutil.WithChiURLParam(req, "frequency", "daily")
	h.HandleRunDigest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var out struct {
		Frequency string `json:"frequency"`
		Processed int    `json:"processed"`
		Generated int    `json:"generated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Frequency != "daily" || out.Processed != 1 {
		t.Errorf("summary = %+v", out)
	}
	if out.Generated != 1 {
		t.Errorf("generated = %d, want 1", out.Generated)
	}
}

func TestHandleRunDigest_BadFrequency(t *testing.T) {
	h := newTestHandler(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/digest/hourly", nil)
	req = testutil.SignedInAs(req, primitive.NewObjectID(), "Admin", "admin@example.com")
	req = testutil.WithChiURLParam(req, "frequency", "hourly")
	h.HandleRunDigest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
