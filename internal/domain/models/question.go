// internal/domain/models/question.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is a generated multiple-choice question. Questions are created
// only by persisting generator output and are never mutated afterward;
// ownership moves from a course's current batch into exactly one archive
// group when the batch is archived.
type Question struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text    string             `bson:"text" json:"text"`
	Choices []string           `bson:"choices" json:"choices"`
	Answer  string             `bson:"answer" json:"answer"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
