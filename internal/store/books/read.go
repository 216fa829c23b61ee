package books

import (
	"context"
	"fmt"

	"github.com/5w1tchy/books-service/internal/store"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(sc scanner) (store.BookRecord, error) {
	var rec store.BookRecord
	err := sc.Scan(&rec.ID, &rec.Title, &rec.Author, &rec.ISBN, &rec.PublishedDate)
	if err != nil {
		return store.BookRecord{}, err
	}
	rec.PublishedDate = rec.PublishedDate.UTC()
	return rec, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (store.BookRecord, error) {
	if !validID(id) {
		return store.BookRecord{}, store.ErrNotFound
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
        SELECT id::text, title, author, isbn, published_date
        FROM books
        WHERE id = $1
    `, id)
	rec, err := scanBook(row)
	if err != nil {
		return store.BookRecord{}, classify(err)
	}
	return rec, nil
}

// FindAll returns every row in insertion order.
func (s *Store) FindAll(ctx context.Context) ([]store.BookRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
        SELECT id::text, title, author, isbn, published_date
        FROM books
        ORDER BY seq
    `)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := make([]store.BookRecord, 0, 16)
	for rows.Next() {
		rec, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
