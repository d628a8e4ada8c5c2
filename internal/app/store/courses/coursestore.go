// internal/app/store/courses/coursestore.go
package coursestore

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
	ErrNotFound       = errors.New("course not found")
	ErrAlreadyMember  = errors.New("user is already a member of this course")
	ErrMemberNotFound = errors.New("user is not a member of this course")
	errBadFrequency   = errors.New(`email frequency must be "daily" or "weekly"`)
	errBadBatchSize   = errors.New("num_questions must be positive")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

// GetByID loads a course by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var c models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Course{}, ErrNotFound
		}
		return models.Course{}, err
	}
	return c, nil
}

// Create inserts a new course with the creator as its first member.
// Frequency defaults to daily and batch size to DefaultNumQuestions.
func (s *Store) Create(ctx context.Context, c models.Course) (models.Course, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.NameCI = text.Fold(c.Name)
	if c.EmailFrequency == "" {
		c.EmailFrequency = models.FrequencyDaily
	}
	if c.EmailFrequency != models.FrequencyDaily && c.EmailFrequency != models.FrequencyWeekly {
		return models.Course{}, errBadFrequency
	}
	if c.NumQuestions == 0 {
		c.NumQuestions = models.DefaultNumQuestions
	}
	if c.NumQuestions < 0 {
		return models.Course{}, errBadBatchSize
	}
	if c.Members == nil {
		c.Members = []models.Membership{{UserID: c.CreatorID}}
	}
	if c.PreviousQuestions == nil {
		c.PreviousQuestions = []models.QuestionGroup{}
	}
	if c.NewQuestionIDs == nil {
		c.NewQuestionIDs = []primitive.ObjectID{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Course{}, err
	}
	return c, nil
}

// ListForUser returns every course the user created or is a member of.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"creator_id": userID},
		bson.M{"members.user_id": userID},
	}}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Course
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFrequency returns all courses on the given cadence. The digest
// processor calls this once per run; members and document come embedded.
func (s *Store) ListByFrequency(ctx context.Context, frequency string) ([]models.Course, error) {
	cur, err := s.c.Find(ctx, bson.M{"email_frequency": frequency})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Course
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingsUpdate holds the mutable course settings. Zero values mean
// "leave unchanged".
type SettingsUpdate struct {
	Name           string
	EmailFrequency string
	NumQuestions   int
}

// UpdateSettings applies a partial settings update.
func (s *Store) UpdateSettings(ctx context.Context, id primitive.ObjectID, upd SettingsUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != "" {
		set["name"] = upd.Name
		set["name_ci"] = text.Fold(upd.Name)
	}
	if upd.EmailFrequency != "" {
		if upd.EmailFrequency != models.FrequencyDaily && upd.EmailFrequency != models.FrequencyWeekly {
			return errBadFrequency
		}
		set["email_frequency"] = upd.EmailFrequency
	}
	if upd.NumQuestions != 0 {
		if upd.NumQuestions < 0 {
			return errBadBatchSize
		}
		set["num_questions"] = upd.NumQuestions
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a course by ID.
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

// AddMember appends a zero-score membership unless the user already has one.
// The filter guards the at-most-one-membership invariant without a separate
// read.
func (s *Store) AddMember(ctx context.Context, courseID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": courseID, "members.user_id": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"members": models.Membership{UserID: userID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the course is missing or the user is already a member.
		if _, err := s.GetByID(ctx, courseID); err != nil {
			return err
		}
		return ErrAlreadyMember
	}
	return nil
}

// MergeMembers adds every listed user that is not yet a member, preserving
// existing score counters. Returns the number of memberships added. Each
// user gets the same guarded push AddMember uses, so a concurrent merge or
// add never produces a second membership for the same user.
func (s *Store) MergeMembers(ctx context.Context, courseID primitive.ObjectID, userIDs []primitive.ObjectID) (int, error) {
	if _, err := s.GetByID(ctx, courseID); err != nil {
		return 0, err
	}

	added := 0
	for _, uid := range userIDs {
		filter := bson.M{"_id": courseID, "members.user_id": bson.M{"$ne": uid}}
		update := bson.M{
			"$push": bson.M{"members": models.Membership{UserID: uid}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		}
		res, err := s.c.UpdateOne(ctx, filter, update)
		if err != nil {
			return added, err
		}
		if res.MatchedCount > 0 {
			added++
		}
	}
	return added, nil
}

// SubmitScore increments the member's cumulative counters. Counters only
// grow; negative deltas are rejected.
func (s *Store) SubmitScore(ctx context.Context, courseID, userID primitive.ObjectID, correct, total int) error {
	if correct < 0 || total < 0 {
		return errors.New("score deltas must be non-negative")
	}
	filter := bson.M{"_id": courseID, "members.user_id": userID}
	update := bson.M{
		"$inc": bson.M{
			"members.$.total_correct":   correct,
			"members.$.total_questions": total,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, courseID); err != nil {
			return err
		}
		return ErrMemberNotFound
	}
	return nil
}

// SetDocument assigns a new document to the course and returns the previous
// one (nil if there was none) so the caller can delete its stored bytes.
// The new assignment is committed first; cleanup of old bytes is the
// caller's best-effort concern.
func (s *Store) SetDocument(ctx context.Context, courseID primitive.ObjectID, doc models.Document) (*models.Document, error) {
	update := bson.M{"$set": bson.M{
		"document":   doc,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before models.Course
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": courseID}, update, opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return before.Document, nil
}

// ReplaceQuestionState writes the archive sequence and the current batch in
// one document update. This is the lifecycle's commit point: there is no
// observable intermediate state where a batch was archived but neither old
// nor new current batch is visible.
func (s *Store) ReplaceQuestionState(ctx context.Context, courseID primitive.ObjectID, groups []models.QuestionGroup, currentIDs []primitive.ObjectID) error {
	if groups == nil {
		groups = []models.QuestionGroup{}
	}
	if currentIDs == nil {
		currentIDs = []primitive.ObjectID{}
	}
	update := bson.M{"$set": bson.M{
		"previous_questions": groups,
		"new_question_ids":   currentIDs,
		"updated_at":         time.Now().UTC(),
	}}
	res, err := s.c.UpdateByID(ctx, courseID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
