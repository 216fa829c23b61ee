package books_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/books-service/internal/store"
	storebooks "github.com/5w1tchy/books-service/internal/store/books"
)

const bookID = "3f1c2a8e-7d41-4b9a-9a55-0d2f6c1e8b70"

var (
	published = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	columns   = []string{"id", "title", "author", "isbn", "published_date"}
)

func newStore(t *testing.T) (*storebooks.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storebooks.New(db, time.Second), mock
}

func TestSave_Insert(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books (title, author, isbn, published_date)`)).
		WithArgs("Book 1", "Author 1", "1234567890", published).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(bookID))

	got, err := s.Save(t.Context(), store.BookRecord{
		Title: "Book 1", Author: "Author 1", ISBN: "1234567890", PublishedDate: published,
	})
	require.NoError(t, err)
	assert.Equal(t, bookID, got.ID)
	assert.Equal(t, "Book 1", got.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InsertDuplicateISBN(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "books_isbn_key"})

	_, err := s.Save(t.Context(), store.BookRecord{Title: "x", Author: "y", ISBN: "1234567890", PublishedDate: published})
	assert.ErrorIs(t, err, store.ErrDuplicateISBN)

	var pg *pgconn.PgError
	assert.True(t, errors.As(err, &pg), "driver error must stay in the chain")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InsertOtherError(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books`)).
		WillReturnError(errors.New("connection refused"))

	_, err := s.Save(t.Context(), store.BookRecord{Title: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrDuplicateISBN)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestSave_Replace(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE books`)).
		WithArgs("Book 1 v2", "Author 1", "1234567890", published, bookID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := store.BookRecord{ID: bookID, Title: "Book 1 v2", Author: "Author 1", ISBN: "1234567890", PublishedDate: published}
	got, err := s.Save(t.Context(), rec)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_ReplaceMissingRow(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE books`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.Save(t.Context(), store.BookRecord{ID: bookID, Title: "x", PublishedDate: published})
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_ReplaceDuplicateISBN(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE books`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "books_isbn_key"})

	_, err := s.Save(t.Context(), store.BookRecord{ID: bookID, ISBN: "1234567890", PublishedDate: published})
	assert.ErrorIs(t, err, store.ErrDuplicateISBN)
}

func TestFindByID(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM books`)).
		WithArgs(bookID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(bookID, "Book 1", "Author 1", "1234567890", published))

	got, err := s.FindByID(t.Context(), bookID)
	require.NoError(t, err)
	assert.Equal(t, store.BookRecord{
		ID: bookID, Title: "Book 1", Author: "Author 1", ISBN: "1234567890", PublishedDate: published,
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NoRows(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM books`)).
		WithArgs(bookID).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := s.FindByID(t.Context(), bookID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindByID_MalformedIDSkipsQuery(t *testing.T) {
	s, mock := newStore(t)

	_, err := s.FindByID(t.Context(), "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll(t *testing.T) {
	s, mock := newStore(t)

	second := "9a0e7f7c-1b2d-4c3e-8f9a-0b1c2d3e4f50"
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY seq`)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(bookID, "Book 1", "Author 1", "1234567890", published).
			AddRow(second, "Book 2", "Author 2", "1234567888", published.AddDate(0, 0, -2)))

	got, err := s.FindAll(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, bookID, got[0].ID)
	assert.Equal(t, second, got[1].ID)
	assert.Equal(t, time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC), got[1].PublishedDate)
}

func TestFindAll_Empty(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY seq`)).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := s.FindAll(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDelete(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM books WHERE id = $1`)).
		WithArgs(bookID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM books WHERE id = $1`)).
		WithArgs(bookID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(t.Context(), store.BookRecord{ID: bookID}))
	assert.ErrorIs(t, s.Delete(t.Context(), store.BookRecord{ID: bookID}), store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAll(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(`^DELETE FROM books$`).WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, s.DeleteAll(t.Context()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS books`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.EnsureSchema(t.Context()))
	require.NoError(t, mock.ExpectationsWereMet())
}
