// internal/app/system/digest/digest.go

// Package digest implements the scheduled question-lifecycle pipeline: for
// every course due at a cadence, archive the current question batch,
// generate a fresh batch from the course's document, persist it, and fan
// out one notification email per member.
//
// Failure policy: errors are absorbed at the narrowest scope that keeps the
// batch moving — per member during fan-out, per course during the
// lifecycle. Nothing escapes a cadence run.
package digest

import (
	"context"
	"time"

	"github.com/dalemusser/coursepulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Candidate is one question as produced by a Generator, before validation
// and persistence.
type Candidate struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
	Answer  string   `json:"answer"`
}

// Generator produces question candidates from a course document. It may
// return fewer items than requested, or none at all; both are valid.
type Generator interface {
	Generate(ctx context.Context, documentPath string, count int) ([]Candidate, error)
}

// Sender delivers one notification message. One call is one attempt; the
// pipeline never retries within a run.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// CourseStore is the slice of the course repository the pipeline needs.
// Satisfied by *coursestore.Store.
type CourseStore interface {
	ListByFrequency(ctx context.Context, frequency string) ([]models.Course, error)
	ReplaceQuestionState(ctx context.Context, courseID primitive.ObjectID, groups []models.QuestionGroup, currentIDs []primitive.ObjectID) error
}

// QuestionStore persists validated generator output. Satisfied by
// *questionstore.Store.
type QuestionStore interface {
	InsertBatch(ctx context.Context, questions []models.Question) ([]primitive.ObjectID, error)
}

// UserDirectory resolves member identities to users for fan-out.
// Satisfied by *userstore.Store.
type UserDirectory interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
}

// DocumentResolver turns a course's stored document key into a filesystem
// path the generator can open. Satisfied by *storage.Local. A nil resolver
// uses stored values verbatim.
type DocumentResolver interface {
	Path(key string) (string, error)
}

// Outcome classifies one course's lifecycle pass.
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeSkippedNoDocument Outcome = "skipped-no-document"
	OutcomeGenerationFailed  Outcome = "generation-failed"
	OutcomePersistFailed     Outcome = "persist-failed"
)

// Result reports what one lifecycle pass did to a course.
type Result struct {
	CourseID  primitive.ObjectID
	Archived  bool
	Generated int // questions that survived validation and were persisted
	Outcome   Outcome
	Err       error
}

// FanoutResult reports delivery counts for one course's notification pass.
type FanoutResult struct {
	Sent    int
	Skipped int // members whose identity did not resolve
	Failed  int
}

// Summary aggregates one cadence run.
type Summary struct {
	Frequency string
	Processed int
	Archived  int
	Generated int
	Skipped   int
	Failed    int
	Sent      int
}

// Config carries the pipeline's tunables.
type Config struct {
	// BaseURL is the public origin used to build member deep links.
	BaseURL string
	// GenerateTimeout bounds one generator call so a hung document cannot
	// stall the batch.
	GenerateTimeout time.Duration
	// SendTimeout bounds one mail delivery attempt.
	SendTimeout time.Duration
}

const (
	defaultGenerateTimeout = 2 * time.Minute
	defaultSendTimeout     = 30 * time.Second
)

// Processor drives cadence runs. It is safe for concurrent use: daily and
// weekly runs may overlap, and a manual trigger may race the schedule; a
// per-course lock keeps any one course in at most one lifecycle+notify
// sequence at a time.
type Processor struct {
	courses   CourseStore
	questions QuestionStore
	users     UserDirectory
	docs      DocumentResolver
	gen       Generator
	sender    Sender
	cfg       Config
	log       *zap.Logger

	locks courseLocks
}

// NewProcessor wires the pipeline. Zero timeouts in cfg fall back to
// defaults.
func NewProcessor(courses CourseStore, questions QuestionStore, users UserDirectory, docs DocumentResolver, gen Generator, sender Sender, cfg Config, logger *zap.Logger) *Processor {
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = defaultGenerateTimeout
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &Processor{
		courses:   courses,
		questions: questions,
		users:     users,
		docs:      docs,
		gen:       gen,
		sender:    sender,
		cfg:       cfg,
		log:       logger,
	}
}
