package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Pool settings for the shared *sql.DB.
const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxIdleTime = 5 * time.Minute
	connMaxLifetime = 30 * time.Minute
)

// Open connects to dsn through the pgx stdlib driver, verifies the
// connection and returns a Store on top of it. The caller owns the
// returned *sql.DB and must close it.
func Open(ctx context.Context, dsn string, timeout time.Duration) (*Store, *sql.DB, error) {
	if dsn == "" {
		return nil, nil, errors.New("postgres: empty DATABASE_URL")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: open: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)
	db.SetConnMaxLifetime(connMaxLifetime)

	s := New(db, timeout)
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return s, db, nil
}
