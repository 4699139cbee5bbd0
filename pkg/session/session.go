// Package session manages per-request output directories.
//
// Every generation request gets its own directory <root>/<id>, where id is a
// random UUID. A [Registry] remembers when each directory was created so a
// [Sweeper] can delete the ones older than a maximum age. Directories under
// root that no registry knows about are swept by modification time.
//
// Registry backends:
//   - memory: in-process map, for tests and long-running processes
//   - file: a session.json marker inside each directory (CLI default)
//   - redis: a sorted set scored by creation time, shared across instances
//   - mongo: a collection with one document per session
//
// # Usage
//
//	reg, err := session.NewRegistry(ctx, session.Config{Backend: "file"}, root)
//	ws, err := session.NewWorkspace(root, reg)
//
//	sess, err := ws.Create(ctx)
//	// ... write artifacts into sess.Dir ...
//	if failed {
//	    ws.Discard(ctx, sess.ID)
//	}
//
//	removed := session.NewSweeper(ws, logger).Sweep(ctx, session.DefaultMaxAge)
package session

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// Default durations.
const (
	// DefaultMaxAge is how long a session directory is kept.
	DefaultMaxAge = time.Hour

	// DefaultSweepInterval is how often a running sweeper checks for expired
	// sessions.
	DefaultSweepInterval = 15 * time.Minute
)

// Session is one request's output directory.
type Session struct {
	ID        string    `json:"id"`
	Dir       string    `json:"dir"`
	CreatedAt time.Time `json:"created_at"`
}

// Age returns how long ago the session was created.
func (s *Session) Age() time.Duration {
	return time.Since(s.CreatedAt)
}

// Entry is a registered session id with its creation time.
type Entry struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Registry maps session ids to creation timestamps.
type Registry interface {
	// Register records a new session.
	Register(ctx context.Context, id string, createdAt time.Time) error

	// CreatedAt returns the creation time and whether the id is known.
	CreatedAt(ctx context.Context, id string) (time.Time, bool, error)

	// Expired returns the ids created before cutoff.
	Expired(ctx context.Context, cutoff time.Time) ([]string, error)

	// List returns every registered session, oldest first.
	List(ctx context.Context) ([]Entry, error)

	// Delete forgets a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend connections.
	Close() error
}

// Backend names accepted by NewRegistry.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a registry backend.
type Config struct {
	Backend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// NewRegistry creates the registry named by cfg.Backend. root is the session
// root directory, used by the file backend.
func NewRegistry(ctx context.Context, cfg Config, root string) (Registry, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileRegistry(root), nil
	case BackendMemory:
		return NewMemoryRegistry(), nil
	case BackendRedis:
		return NewRedisRegistry(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		})
	case BackendMongo:
		return NewMongoRegistry(ctx, MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"unknown session backend %q (must be one of: memory, file, redis, mongo)", cfg.Backend)
}
