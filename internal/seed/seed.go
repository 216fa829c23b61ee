// Package seed resets a store to a small set of sample books.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/5w1tchy/books-service/internal/store"
)

// Store is what seeding needs from a book store.
type Store interface {
	DeleteAll(ctx context.Context) error
	Save(ctx context.Context, rec store.BookRecord) (store.BookRecord, error)
}

// SampleBooks are inserted in this order.
var SampleBooks = []store.BookRecord{
	{Title: "Book 1", Author: "Author 1", ISBN: "1234567890", PublishedDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
	{Title: "Book 2", Author: "Author 2", ISBN: "1234567888", PublishedDate: time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)},
}

// Run deletes every stored book and saves SampleBooks. It stops at the
// first failure and returns how many books were inserted.
func Run(ctx context.Context, s Store, log *slog.Logger) (int, error) {
	if err := s.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("seed: clear books: %w", err)
	}
	n := 0
	for _, rec := range SampleBooks {
		saved, err := s.Save(ctx, rec)
		if err != nil {
			return n, fmt.Errorf("seed: save %s: %w", rec.ISBN, err)
		}
		log.DebugContext(ctx, "seeded book", "id", saved.ID, "isbn", saved.ISBN)
		n++
	}
	log.InfoContext(ctx, "sample data initialized", "books", n)
	return n, nil
}
