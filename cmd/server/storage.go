package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/config"
	"github.com/rezkam/todos/internal/infrastructure/persistence/fs"
	"github.com/rezkam/todos/internal/infrastructure/persistence/gcs"
	"github.com/rezkam/todos/internal/infrastructure/persistence/mongodb"
	"github.com/rezkam/todos/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/todos/internal/infrastructure/persistence/sqlite"
)

// store is a repository holding a connection that must be released.
type store interface {
	todo.Repository
	Close() error
}

// fsStore adapts the filesystem store, which holds no connection.
type fsStore struct {
	*fs.Store
}

func (fsStore) Close() error { return nil }

// openStore connects to the backend selected by cfg.
func openStore(ctx context.Context, cfg config.StorageConfig) (store, error) {
	switch cfg.Kind() {
	case config.StorageMongo:
		return opened(mongodb.NewStore(ctx, mongodb.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		}))
	case config.StoragePostgres:
		return opened(postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second,
		}))
	case config.StorageSQLite:
		return opened(sqlite.NewStore(ctx, cfg.SQLite.Path))
	case config.StorageFS:
		s, err := fs.NewStore(cfg.FS.Dir)
		if err != nil {
			return nil, err
		}
		return fsStore{s}, nil
	case config.StorageGCS:
		return opened(gcs.NewStore(ctx, cfg.GCS.Bucket, cfg.GCS.Prefix))
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownStorageType, cfg.Type)
	}
}

// opened converts a constructor result without wrapping a nil store in a
// non-nil interface.
func opened[S store](s S, err error) (store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// describeStorage names the storage target for logs without credentials.
func describeStorage(cfg config.StorageConfig) string {
	switch cfg.Kind() {
	case config.StorageMongo:
		return maskPassword(cfg.Mongo.URI)
	case config.StoragePostgres:
		return maskPassword(cfg.Database.DSN)
	case config.StorageSQLite:
		return cfg.SQLite.Path
	case config.StorageFS:
		return cfg.FS.Dir
	case config.StorageGCS:
		return "gs://" + cfg.GCS.Bucket + "/" + cfg.GCS.Prefix
	}
	return ""
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		// unparseable strings may still hold secrets
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
