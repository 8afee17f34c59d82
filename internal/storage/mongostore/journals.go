package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const JournalsCollection = "journals"

type JournalStore struct {
	col *mongo.Collection
}

func NewJournalStore(db *mongo.Database) *JournalStore {
	return &JournalStore{col: db.Collection(JournalsCollection)}
}

// notReviewed matches a journal by ID unless it has been reviewed.
func notReviewed(id string) bson.M {
	return bson.M{"_id": id, "reviewed": bson.M{"$ne": true}}
}

func (s *JournalStore) GetJournal(ctx context.Context, id string) (*models.Journal, error) {
	var journal models.Journal
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&journal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrJournalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find journal %s: %w", id, err)
	}
	return &journal, nil
}

// SaveUnreviewed upserts with a filter that excludes reviewed entries. When
// the stored entry is reviewed the filter misses, the upsert tries to insert
// the same _id and the server answers with a duplicate key error.
func (s *JournalStore) SaveUnreviewed(ctx context.Context, j *models.Journal) error {
	set := bson.M{
		"user_id":    j.UserID,
		"date":       j.Date,
		"week":       j.Week,
		"content":    j.Content,
		"submitted":  j.Submitted,
		"updated_at": j.UpdatedAt,
	}
	if j.Timestamp != nil {
		set["timestamp"] = *j.Timestamp
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"reviewed": false, "remarks": ""},
	}

	_, err := s.col.UpdateOne(ctx, notReviewed(j.ID), update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrJournalReviewed
	}
	if err != nil {
		return fmt.Errorf("upsert journal %s: %w", j.ID, err)
	}
	return nil
}

func (s *JournalStore) ListByUser(ctx context.Context, userID string) ([]models.Journal, error) {
	return s.find(ctx, bson.M{"user_id": userID}, bson.D{{Key: "date", Value: -1}})
}

func (s *JournalStore) ListSubmitted(ctx context.Context, status models.JournalStatus) ([]models.Journal, error) {
	filter := bson.M{"timestamp": bson.M{"$exists": true}}
	switch status {
	case models.JournalStatusPending:
		filter["submitted"] = true
		filter["reviewed"] = false
	case models.JournalStatusReviewed:
		filter["reviewed"] = true
	}
	return s.find(ctx, filter, bson.D{{Key: "timestamp", Value: -1}})
}

func (s *JournalStore) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Journal, error) {
	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find journals: %w", err)
	}
	defer cursor.Close(ctx)

	var journals []models.Journal
	if err = cursor.All(ctx, &journals); err != nil {
		return nil, fmt.Errorf("decode journals: %w", err)
	}
	return journals, nil
}

func (s *JournalStore) Review(ctx context.Context, id, remarks string, reviewed bool, at time.Time) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"remarks":     remarks,
		"reviewed":    reviewed,
		"reviewed_at": at,
	}})
	if err != nil {
		return fmt.Errorf("review journal %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return services.ErrJournalNotFound
	}
	return nil
}

func (s *JournalStore) AddAttachment(ctx context.Context, id, url string) error {
	result, err := s.col.UpdateOne(ctx, notReviewed(id), bson.M{
		"$push": bson.M{"attachments": url},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("attach to journal %s: %w", id, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}
	if _, err := s.GetJournal(ctx, id); err != nil {
		return err
	}
	return services.ErrJournalReviewed
}
