// Package bootstrap opens the book store selected by configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/5w1tchy/books-service/internal/config"
	"github.com/5w1tchy/books-service/internal/store"
	storebooks "github.com/5w1tchy/books-service/internal/store/books"
	"github.com/5w1tchy/books-service/internal/store/memory"
	"github.com/5w1tchy/books-service/internal/store/mongobooks"
)

// Store is every backend's common surface: the service's CRUD methods,
// bulk delete for seeding and a connectivity probe.
type Store interface {
	Save(ctx context.Context, rec store.BookRecord) (store.BookRecord, error)
	FindByID(ctx context.Context, id string) (store.BookRecord, error)
	FindAll(ctx context.Context) ([]store.BookRecord, error)
	Delete(ctx context.Context, rec store.BookRecord) error
	DeleteAll(ctx context.Context) error
	Ping(ctx context.Context) error
}

var (
	_ Store = (*storebooks.Store)(nil)
	_ Store = (*mongobooks.Store)(nil)
	_ Store = (*memory.Store)(nil)
)

// OpenStore connects to the configured backend and prepares its schema or
// indexes. The returned close func releases the connection.
func OpenStore(ctx context.Context, cfg config.Config, log *slog.Logger) (Store, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		s, db, err := storebooks.Open(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("postgres: ensure schema: %w", err)
		}
		log.Info("connected to postgres")
		return s, closeDB(db), nil

	case config.DriverMongo:
		s, err := mongobooks.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, err
		}
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, nil, fmt.Errorf("mongo: ensure indexes: %w", err)
		}
		log.Info("connected to mongo", "database", cfg.MongoDatabase)
		return s, s.Close, nil

	case config.DriverMemory:
		log.Info("using in-memory store")
		return memory.New(), func(context.Context) error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func closeDB(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}
