package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nao1215/antenna/internal/model"
)

// Default MongoDB names.
const (
	DefaultMongoDatabase   = "antenna"
	DefaultMongoCollection = "transmissions"
)

// ErrMongoURIRequired is returned when OpenMongo is called without a URI.
var ErrMongoURIRequired = errors.New("mongo URI is required")

// MongoOptions configures MongoStore.
type MongoOptions struct {
	// URI is the connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database is the database name. Empty means DefaultMongoDatabase.
	Database string

	// Collection is the collection name. Empty means DefaultMongoCollection.
	Collection string
}

// MongoStore is the MongoDB backend. Documents use the body digest as _id,
// so the primary key enforces body uniqueness.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to MongoDB and verifies the connection with a ping.
func OpenMongo(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, ErrMongoURIRequired
	}
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "notified_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Lookup reports whether a transmission with exactly this body was stored.
func (s *MongoStore) Lookup(ctx context.Context, body string) (bool, error) {
	var doc StoredRecord
	err := s.coll.FindOne(ctx, bson.D{
		{Key: "_id", Value: Digest(body)},
		{Key: "body", Value: body},
	}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, model.StoreError("lookup", fmt.Errorf("failed to find transmission: %w", err))
	}
	return true, nil
}

// Insert stores record. A duplicate body is not an error.
func (s *MongoStore) Insert(ctx context.Context, record model.UpdateRecord) error {
	doc := StoredRecord{
		Title:      record.Title,
		Body:       record.Body,
		Digest:     Digest(record.Body),
		NotifiedAt: time.Now().UTC(),
	}
	_, err := s.coll.InsertOne(ctx, doc)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return model.StoreError("insert", fmt.Errorf("failed to insert transmission: %w", err))
	}
	return nil
}

// List returns stored transmissions, most recently notified first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]StoredRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "notified_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, model.StoreError("list", fmt.Errorf("failed to list transmissions: %w", err))
	}

	var results []StoredRecord
	if err := cursor.All(ctx, &results); err != nil {
		return nil, model.StoreError("list", fmt.Errorf("failed to decode transmissions: %w", err))
	}
	return results, nil
}

// Count returns the number of stored transmissions.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, model.StoreError("count", fmt.Errorf("failed to count transmissions: %w", err))
	}
	return n, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
