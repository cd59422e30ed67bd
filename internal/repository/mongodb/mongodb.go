package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medrec/records-api/internal/config"
	"github.com/medrec/records-api/pkg/metrics"
)

const connectTimeout = 10 * time.Second

// NewDB connects to MongoDB and returns a handle on the configured database.
// The returned client is owned by the caller, which is responsible for
// calling Disconnect on shutdown.
func NewDB(cfg config.MongoConfig) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, nil, err
	}

	return db, client, nil
}

// observeRead records a lookup operation. A missing document is a completed
// round trip, not a store failure, so it counts as ok.
func observeRead(m *metrics.Metrics, operation string, start time.Time, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = nil
	}
	m.ObserveStore(operation, start, err)
}

// ensureIndexes creates the unique index on users.uid. Uniqueness of uid is
// enforced here, at the store, not by application-level coordination.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create uid index: %w", err)
	}
	return nil
}
