package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const WorkdaysCollection = "workdays"

type WorkdayStore struct {
	col *mongo.Collection
}

func NewWorkdayStore(db *mongo.Database) *WorkdayStore {
	return &WorkdayStore{col: db.Collection(WorkdaysCollection)}
}

func (s *WorkdayStore) GetWorkday(ctx context.Context, date string) (*models.Workday, error) {
	var workday models.Workday
	err := s.col.FindOne(ctx, bson.M{"_id": date}).Decode(&workday)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrWorkdayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find workday %s: %w", date, err)
	}
	return &workday, nil
}

// ListWorkdays relies on YYYY-MM-DD keys sorting like the dates they name.
func (s *WorkdayStore) ListWorkdays(ctx context.Context, from, to string) ([]models.Workday, error) {
	filter := bson.M{"_id": bson.M{"$gte": from, "$lte": to}}
	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find workdays: %w", err)
	}
	defer cursor.Close(ctx)

	var workdays []models.Workday
	if err = cursor.All(ctx, &workdays); err != nil {
		return nil, fmt.Errorf("decode workdays: %w", err)
	}
	return workdays, nil
}

func (s *WorkdayStore) SetWorkday(ctx context.Context, w *models.Workday) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": w.Date}, w, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert workday %s: %w", w.Date, err)
	}
	return nil
}

func (s *WorkdayStore) DeleteWorkday(ctx context.Context, date string) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": date})
	if err != nil {
		return fmt.Errorf("delete workday %s: %w", date, err)
	}
	if result.DeletedCount == 0 {
		return services.ErrWorkdayNotFound
	}
	return nil
}
