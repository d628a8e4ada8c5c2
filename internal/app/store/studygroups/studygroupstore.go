// internal/app/store/studygroups/studygroupstore.go
package studygroupstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("study group not found")
	ErrAlreadyMember = errors.New("user is already a member of this study group")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("study_groups")}
}

// GetByID loads a study group by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.StudyGroup, error) {
	var g models.StudyGroup
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.StudyGroup{}, ErrNotFound
		}
		return models.StudyGroup{}, err
	}
	return g, nil
}

// Create inserts a new study group.
func (s *Store) Create(ctx context.Context, g models.StudyGroup) (models.StudyGroup, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	if g.MemberIDs == nil {
		g.MemberIDs = []primitive.ObjectID{}
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.StudyGroup{}, err
	}
	return g, nil
}

// ListByCreator returns the groups owned by the user.
func (s *Store) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.StudyGroup, error) {
	cur, err := s.c.Find(ctx, bson.M{"creator_id": creatorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.StudyGroup
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a rename plus member additions/removals in one write.
// Added members that are already present are skipped by the $addToSet.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name string, add, remove []primitive.ObjectID) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	update := bson.M{"$set": set}
	if len(add) > 0 {
		update["$addToSet"] = bson.M{"member_ids": bson.M{"$each": add}}
	}
	if len(remove) > 0 {
		update["$pullAll"] = bson.M{"member_ids": remove}
	}
	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMember appends one user, failing if they are already in the group.
func (s *Store) AddMember(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "member_ids": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"member_ids": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyMember
	}
	return nil
}

// Delete removes a study group by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
