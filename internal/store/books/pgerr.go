package books

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/5w1tchy/books-service/internal/store"
)

const isbnConstraint = "books_isbn_key"

// classify maps driver errors onto the store sentinels. Unknown errors
// pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return err
	}
	switch pg.Code {
	case "23505": // unique_violation
		if pg.ConstraintName == isbnConstraint || pg.ConstraintName == "" {
			return fmt.Errorf("%w: %w", store.ErrDuplicateISBN, err)
		}
	case "22P02": // invalid_text_representation, e.g. a malformed uuid
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}
	return err
}
