// Package mongodb stores todos as documents in a MongoDB collection.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rezkam/todos/internal/application/todo"
)

const (
	DefaultDatabase   = "todos"
	DefaultCollection = "todos"
	DefaultTimeout    = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

// Config holds the connection settings for the store.
type Config struct {
	URI        string
	Database   string // default: todos
	Collection string // default: todos
	Timeout    time.Duration
}

func (c Config) withDefaults() Config {
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Store provides the MongoDB implementation of todo.Repository.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Compile-time verification that Store implements the repository interface.
var _ todo.Repository = (*Store)(nil)

// NewStore connects to MongoDB, verifies the connection and ensures
// the listing index exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb uri is required")
	}
	cfg = cfg.withDefaults()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    sortNewestFirst,
		Options: options.Index().SetName("createdAt_id_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// Collection returns the underlying collection.
func (s *Store) Collection() *mongo.Collection {
	return s.coll
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var sortNewestFirst = bson.D{
	{Key: "createdAt", Value: -1},
	{Key: "_id", Value: -1},
}
