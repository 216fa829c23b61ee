package books

import (
	"context"
	"fmt"

	"github.com/5w1tchy/books-service/internal/store"
)

// replace writes every column of rec over the existing row.
func (s *Store) replace(ctx context.Context, rec store.BookRecord) (store.BookRecord, error) {
	if !validID(rec.ID) {
		return store.BookRecord{}, store.ErrNotFound
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
        UPDATE books
        SET title = $1, author = $2, isbn = $3, published_date = $4
        WHERE id = $5
    `, rec.Title, rec.Author, rec.ISBN, rec.PublishedDate, rec.ID)
	if err != nil {
		return store.BookRecord{}, fmt.Errorf("update book %s: %w", rec.ID, classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.BookRecord{}, err
	}
	if n == 0 {
		return store.BookRecord{}, store.ErrNotFound
	}
	return rec, nil
}
