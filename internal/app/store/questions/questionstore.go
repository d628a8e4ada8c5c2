// internal/app/store/questions/questionstore.go
package questionstore

import (
	"context"
	"time"

	"github.com/dalemusser/coursepulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("questions")}
}

// InsertBatch stores the questions and returns their new IDs in input
// order. Questions are immutable after this point.
func (s *Store) InsertBatch(ctx context.Context, questions []models.Question) ([]primitive.ObjectID, error) {
	if len(questions) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	ids := make([]primitive.ObjectID, len(questions))
	docs := make([]interface{}, len(questions))
	for i := range questions {
		questions[i].ID = primitive.NewObjectID()
		questions[i].CreatedAt = now
		ids[i] = questions[i].ID
		docs[i] = questions[i]
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetByIDs loads questions and returns them in the order of ids. IDs that
// resolve to nothing are silently absent from the result.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var found []models.Question
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	out := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}
