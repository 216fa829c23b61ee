package books

import (
	"context"
	"fmt"

	"github.com/5w1tchy/books-service/internal/store"
)

func (s *Store) Delete(ctx context.Context, rec store.BookRecord) error {
	if !validID(rec.ID) {
		return store.ErrNotFound
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, rec.ID)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", rec.ID, classify(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAll removes every row. Used by sample-data seeding.
func (s *Store) DeleteAll(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `DELETE FROM books`)
	return err
}
