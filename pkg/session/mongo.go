package session

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// Defaults for MongoConfig.
const (
	DefaultMongoDatabase   = "qrsheet"
	DefaultMongoCollection = "sessions"
)

// MongoConfig configures a MongoRegistry.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoRegistry stores one document per session keyed by id with an indexed
// created_at field.
type MongoRegistry struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoRegistry connects to MongoDB, verifies the connection and ensures
// the created_at index exists.
func NewMongoRegistry(ctx context.Context, cfg MongoConfig) (*MongoRegistry, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create session index")
	}
	return &MongoRegistry{client: client, coll: coll}, nil
}

func (r *MongoRegistry) Register(ctx context.Context, id string, createdAt time.Time) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": id},
		Entry{ID: id, CreatedAt: createdAt.UTC()},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert session: %w", err)
	}
	return nil
}

func (r *MongoRegistry) CreatedAt(ctx context.Context, id string) (time.Time, bool, error) {
	var e Entry
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("mongo find session: %w", err)
	}
	return e.CreatedAt, true, nil
}

func (r *MongoRegistry) Expired(ctx context.Context, cutoff time.Time) ([]string, error) {
	entries, err := r.find(ctx, bson.M{"created_at": bson.M{"$lt": cutoff.UTC()}})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids, nil
}

func (r *MongoRegistry) List(ctx context.Context) ([]Entry, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRegistry) find(ctx context.Context, filter bson.M) ([]Entry, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find sessions: %w", err)
	}
	var out []Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo decode sessions: %w", err)
	}
	return out, nil
}

func (r *MongoRegistry) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo delete session: %w", err)
	}
	return nil
}

func (r *MongoRegistry) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

var _ Registry = (*MongoRegistry)(nil)
