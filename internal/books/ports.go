package books

import (
	"context"

	"github.com/5w1tchy/books-service/internal/store"
)

// Store is the storage collaborator the service depends on.
//
// Save inserts when rec.ID is empty (the store assigns the ID) and
// otherwise replaces the whole record with that ID. It reports
// store.ErrDuplicateISBN when the unique ISBN constraint rejects the write.
// FindByID and Delete report store.ErrNotFound for unknown IDs.
type Store interface {
	Save(ctx context.Context, rec store.BookRecord) (store.BookRecord, error)
	FindByID(ctx context.Context, id string) (store.BookRecord, error)
	FindAll(ctx context.Context) ([]store.BookRecord, error)
	Delete(ctx context.Context, rec store.BookRecord) error
}
