package books

import (
	"context"
	"fmt"

	"github.com/5w1tchy/books-service/internal/store"
)

// Save inserts rec when it has no ID and otherwise replaces the row with that ID.
func (s *Store) Save(ctx context.Context, rec store.BookRecord) (store.BookRecord, error) {
	if rec.ID == "" {
		return s.insert(ctx, rec)
	}
	return s.replace(ctx, rec)
}

func (s *Store) insert(ctx context.Context, rec store.BookRecord) (store.BookRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.db.QueryRowContext(ctx, `
        INSERT INTO books (title, author, isbn, published_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id::text
    `, rec.Title, rec.Author, rec.ISBN, rec.PublishedDate).Scan(&rec.ID)
	if err != nil {
		return store.BookRecord{}, fmt.Errorf("insert book: %w", classify(err))
	}
	return rec, nil
}
