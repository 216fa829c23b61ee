// Package books is the PostgreSQL book store. Queries run through
// database/sql on the pgx stdlib driver.
package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const DefaultTimeout = 5 * time.Second

type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// New wraps an open database handle. Every call is bounded by timeout
// (DefaultTimeout when zero or negative).
func New(db *sql.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store{db: db, timeout: timeout}
}

const schema = `
CREATE TABLE IF NOT EXISTS books (
    id             uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    seq            bigint GENERATED ALWAYS AS IDENTITY,
    title          text NOT NULL,
    author         text NOT NULL,
    isbn           text NOT NULL,
    published_date date NOT NULL,
    CONSTRAINT books_isbn_key UNIQUE (isbn)
)`

// EnsureSchema creates the books table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// validID reports whether id can name a row. Anything else cannot exist.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
