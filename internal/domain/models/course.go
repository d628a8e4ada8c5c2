// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Email frequencies a course can be scheduled on. Courses are partitioned
// by frequency; each digest run processes exactly one partition.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// DefaultNumQuestions is used when a course is created without an explicit
// batch size.
const DefaultNumQuestions = 5

// Course is the aggregate the digest pipeline operates on. Members, the
// attached document, the current question batch, and the archived batches
// are all embedded so the question state can be replaced with a single
// document write.
type Course struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"name_ci"`
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creator_id"`

	EmailFrequency string `bson:"email_frequency" json:"email_frequency"` // "daily" | "weekly"
	NumQuestions   int    `bson:"num_questions" json:"num_questions"`

	// Document is the uploaded source the generator reads. A course with no
	// document is skipped by the digest pipeline.
	Document *Document `bson:"document,omitempty" json:"document,omitempty"`

	Members []Membership `bson:"members" json:"members"`

	// PreviousQuestions is append-only; groups are immutable once archived.
	PreviousQuestions []QuestionGroup      `bson:"previous_questions" json:"previous_questions"`
	NewQuestionIDs    []primitive.ObjectID `bson:"new_question_ids" json:"new_question_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Membership tracks one user's cumulative quiz performance in a course.
// Counters only ever grow, and only via score submission.
type Membership struct {
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	TotalCorrect   int                `bson:"total_correct" json:"total_correct"`
	TotalQuestions int                `bson:"total_questions" json:"total_questions"`
}

// QuestionGroup is a timestamped archive of a former current batch.
// GroupID is unique within the course (course name + archival timestamp,
// with a counter suffix on collision).
type QuestionGroup struct {
	GroupID     string               `bson:"id" json:"id"`
	QuestionIDs []primitive.ObjectID `bson:"question_ids" json:"question_ids"`
	ArchivedAt  time.Time            `bson:"archived_at" json:"archived_at"`
}

// Document is the uploaded source file for question generation. A course
// owns at most one; replacing it deletes the previous one.
type Document struct {
	Name     string `bson:"name" json:"name"`
	FilePath string `bson:"file_path" json:"file_path"`
}

// HasDocument reports whether the course can be advanced by the digest
// pipeline.
func (c *Course) HasDocument() bool {
	return c.Document != nil && c.Document.FilePath != ""
}

// MemberIndex returns the position of userID in Members, or -1.
func (c *Course) MemberIndex(userID primitive.ObjectID) int {
	for i, m := range c.Members {
		if m.UserID == userID {
			return i
		}
	}
	return -1
}

// IsMember reports whether userID has a membership in the course.
func (c *Course) IsMember(userID primitive.ObjectID) bool {
	return c.MemberIndex(userID) >= 0
}
