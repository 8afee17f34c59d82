package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes behind the listing queries.
// Called on startup from main after Mongo has connected.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys: bson.D{
					{Key: "role", Value: 1},
					{Key: "is_active", Value: 1},
					{Key: "last_name", Value: 1},
				},
				Options: options.Index().SetName("idx_role_active_last_name"),
			},
		},
		JournalsCollection: {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "date", Value: -1},
				},
				Options: options.Index().SetName("idx_user_date"),
			},
			{
				Keys: bson.D{
					{Key: "submitted", Value: 1},
					{Key: "reviewed", Value: 1},
					{Key: "timestamp", Value: -1},
				},
				Options: options.Index().SetName("idx_status_timestamp"),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
