package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// SnapshotStore persists the daily dashboard snapshots produced by the
// scheduler. History lives in MongoDB, away from the transactional store.
type SnapshotStore interface {
	SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error
	LatestSnapshots(ctx context.Context, limit int64) ([]models.DailySnapshot, error)
}

// MongoSnapshotStore implements SnapshotStore on top of a MongoDB
// collection.
type MongoSnapshotStore struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoSnapshotStore connects to MongoDB and verifies the connection.
func NewMongoSnapshotStore(ctx context.Context, uri string, dbName string) (*MongoSnapshotStore, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoSnapshotStore{
		client:   client,
		dbName:   dbName,
		collName: "daily_snapshots",
	}, nil
}

// SaveDailySnapshot inserts one snapshot document.
func (s *MongoSnapshotStore) SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	collection := s.client.Database(s.dbName).Collection(s.collName)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return &models.DependencyError{Dependency: "snapshot store", Err: err}
	}
	return nil
}

// LatestSnapshots returns the most recent snapshots, newest first.
func (s *MongoSnapshotStore) LatestSnapshots(ctx context.Context, limit int64) ([]models.DailySnapshot, error) {
	collection := s.client.Database(s.dbName).Collection(s.collName)
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, &models.DependencyError{Dependency: "snapshot store", Err: err}
	}
	defer cursor.Close(ctx)

	var snapshots []models.DailySnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, &models.DependencyError{Dependency: "snapshot store", Err: err}
	}
	return snapshots, nil
}

// Close closes the MongoDB connection.
func (s *MongoSnapshotStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
