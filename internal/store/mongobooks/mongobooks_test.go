package mongobooks

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/5w1tchy/books-service/internal/store"
)

func TestDocRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	rec := store.BookRecord{
		ID:            oid.Hex(),
		Title:         "Book 1",
		Author:        "Author 1",
		ISBN:          "1234567890",
		PublishedDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, rec, fromDoc(toDoc(rec, oid)))
}

func TestMalformedIDIsNotFound(t *testing.T) {
	// No client calls are made for ids that cannot be ObjectIDs.
	s := &Store{timeout: time.Second}
	ctx := context.Background()

	_, err := s.FindByID(ctx, "xyz")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, store.BookRecord{ID: "xyz"}), store.ErrNotFound)
	_, err = s.Save(ctx, store.BookRecord{ID: "xyz"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestStore_Integration runs against a live server when MONGO_TEST_URI is set.
func TestStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	s, err := Connect(ctx, uri, "books_test_"+primitive.NewObjectID().Hex(), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.coll.Database().Drop(context.Background())
		_ = s.Close(context.Background())
	})
	require.NoError(t, s.EnsureIndexes(ctx))

	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	a, err := s.Save(ctx, store.BookRecord{Title: "Book 1", Author: "Author 1", ISBN: "1234567890", PublishedDate: date})
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)

	_, err = s.Save(ctx, store.BookRecord{Title: "Dup", Author: "x", ISBN: "1234567890", PublishedDate: date})
	assert.ErrorIs(t, err, store.ErrDuplicateISBN)

	b, err := s.Save(ctx, store.BookRecord{Title: "Book 2", Author: "Author 2", ISBN: "1234567888", PublishedDate: date})
	require.NoError(t, err)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, b.ID, all[1].ID)

	a.Title = "Book 1 v2"
	_, err = s.Save(ctx, a)
	require.NoError(t, err)
	got, err := s.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	b.ISBN = a.ISBN
	_, err = s.Save(ctx, b)
	assert.ErrorIs(t, err, store.ErrDuplicateISBN)

	require.NoError(t, s.Delete(ctx, a))
	_, err = s.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, a), store.ErrNotFound)

	require.NoError(t, s.DeleteAll(ctx))
	all, err = s.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
