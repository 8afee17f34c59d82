package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultDatabaseName = "ojt_journal"
	mongoConnectTimeout = 30 * time.Second
	mongoPingTimeout    = 10 * time.Second
)

// Connect opens the MongoDB client and returns the database named in the
// URI path, or ojt_journal when the URI names none.
func Connect(mongoURI string) (*mongo.Client, *mongo.Database, error) {
	cs, err := connstring.ParseAndValidate(mongoURI)
	if err != nil {
		return nil, nil, err
	}

	opts := options.Client().
		ApplyURI(mongoURI).
		SetAppName("ojt-journal").
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(50)

	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	log.Printf("Attempting to connect to MongoDB at %v...", cs.Hosts)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), mongoPingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	name := cs.Database
	if name == "" {
		name = defaultDatabaseName
	}
	log.Printf("✅ Connected to MongoDB (database %s)", name)
	return client, client.Database(name), nil
}

func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoPingTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
