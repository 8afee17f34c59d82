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

const UsersCollection = "users"

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(UsersCollection)}
}

func (s *UserStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user %s: %w", user.ID, err)
	}
	return nil
}

func (s *UserStore) ListStudents(ctx context.Context, isActive bool) ([]models.User, error) {
	filter := bson.M{
		"role":      models.RoleStudent,
		"is_active": isActive,
	}
	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find students: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return users, nil
}

func (s *UserStore) SetActive(ctx context.Context, id string, isActive bool) error {
	return s.update(ctx, id, bson.M{"$set": bson.M{"is_active": isActive, "updated_at": time.Now().UTC()}})
}

// SetWorkSchedule stores the schedule; an empty one removes the field so
// the Mon-Fri default applies.
func (s *UserStore) SetWorkSchedule(ctx context.Context, id string, schedule []int) error {
	update := bson.M{"$set": bson.M{"work_schedule": schedule, "updated_at": time.Now().UTC()}}
	if len(schedule) == 0 {
		update = bson.M{
			"$unset": bson.M{"work_schedule": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		}
	}
	return s.update(ctx, id, update)
}

func (s *UserStore) update(ctx context.Context, id string, update bson.M) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return services.ErrUserNotFound
	}
	return nil
}
