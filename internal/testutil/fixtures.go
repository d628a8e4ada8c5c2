package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls chain: an existing route context gains the new parameter.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
// Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     name,
		FullNameCI:   text.Fold(name),
		Email:        email,
		PasswordHash: "fixture-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("fixture: insert user: %v", err)
	}
	return u
}

// CreateCourse creates a test course owned by creatorID. The creator is
// enrolled as the first member, matching what the course store does.
func (f *Fixtures) CreateCourse(ctx context.Context, name string, creatorID primitive.ObjectID, frequency string) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Course{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		CreatorID:      creatorID,
		EmailFrequency: frequency,
		NumQuestions:   models.DefaultNumQuestions,
		Members:        []models.Membership{{UserID: creatorID}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("courses").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("fixture: insert course: %v", err)
	}
	return c
}

// CreateStudyGroup creates a test study group with the given members.
func (f *Fixtures) CreateStudyGroup(ctx context.Context, name string, creatorID primitive.ObjectID, memberIDs ...primitive.ObjectID) models.StudyGroup {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.StudyGroup{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatorID: creatorID,
		MemberIDs: memberIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("study_groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("fixture: insert study group: %v", err)
	}
	return g
}

// CreateQuestion inserts one question and returns it.
func (f *Fixtures) CreateQuestion(ctx context.Context, text string, choices []string, answer string) models.Question {
	f.t.Helper()

	q := models.Question{
		ID:        primitive.NewObjectID(),
		Text:      text,
		Choices:   choices,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("fixture: insert question: %v", err)
	}
	return q
}
