package books

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/5w1tchy/books-service/internal/apperr"
	"github.com/5w1tchy/books-service/internal/models"
	"github.com/5w1tchy/books-service/internal/store"
)

// Service provides the book CRUD operations. It holds no mutable state;
// concurrency control is left to the store.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService creates a new book service.
func NewService(s Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: s, log: log}
}

// Create validates b and persists it as a new record. Any ID on b is ignored.
func (s *Service) Create(ctx context.Context, b models.Book) (models.Book, error) {
	if err := ValidateBook(b); err != nil {
		return models.Book{}, err
	}
	s.log.InfoContext(ctx, "creating new book", "isbn", b.ISBN)

	rec := toRecord(b)
	rec.ID = ""
	saved, err := s.store.Save(ctx, rec)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateISBN) {
			dup := apperr.Duplicate(b.ISBN, err)
			s.log.ErrorContext(ctx, dup.Message, "error", err)
			return models.Book{}, dup
		}
		return models.Book{}, s.unexpected(ctx, "creating book", err)
	}

	s.log.InfoContext(ctx, "book created", "id", saved.ID)
	return toBook(saved), nil
}

// Get returns the book with the given ID.
func (s *Service) Get(ctx context.Context, id string) (models.Book, error) {
	s.log.InfoContext(ctx, "finding book", "id", id)
	rec, err := s.find(ctx, id, "finding book")
	if err != nil {
		return models.Book{}, err
	}
	return toBook(rec), nil
}

// List returns every stored book in store order. It never returns nil on success.
func (s *Service) List(ctx context.Context) ([]models.Book, error) {
	s.log.InfoContext(ctx, "retrieving all books")
	recs, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, s.unexpected(ctx, "retrieving books", err)
	}
	out := make([]models.Book, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toBook(rec))
	}
	return out, nil
}

// Update looks the record up, merges p onto it and writes the whole record back.
func (s *Service) Update(ctx context.Context, id string, p models.BookPatch) (models.Book, error) {
	s.log.InfoContext(ctx, "updating book", "id", id)
	existing, err := s.find(ctx, id, "updating book")
	if err != nil {
		return models.Book{}, err
	}

	merged, err := Merge(existing, p)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindBadRequest {
			s.log.WarnContext(ctx, MsgEmptyUpdate, "id", id)
		}
		return models.Book{}, err
	}
	merged.ID = existing.ID

	saved, err := s.store.Save(ctx, merged)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateISBN):
			dup := apperr.Duplicate(merged.ISBN, err)
			s.log.ErrorContext(ctx, dup.Message, "id", id, "error", err)
			return models.Book{}, dup
		case errors.Is(err, store.ErrNotFound):
			return models.Book{}, apperr.NotFound(id)
		default:
			return models.Book{}, s.unexpected(ctx, "updating book", err)
		}
	}

	s.log.InfoContext(ctx, "book updated", "id", saved.ID)
	return toBook(saved), nil
}

// Delete removes the book with the given ID and reports true on success.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.log.InfoContext(ctx, "deleting book", "id", id)
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, apperr.NotFound(id)
		}
		return false, s.deletionFailed(ctx, id, err)
	}

	if err := s.store.Delete(ctx, rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, apperr.NotFound(id)
		}
		return false, s.deletionFailed(ctx, id, err)
	}

	s.log.InfoContext(ctx, "book deleted", "id", id)
	return true, nil
}

func (s *Service) find(ctx context.Context, id, action string) (store.BookRecord, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.BookRecord{}, apperr.NotFound(id)
		}
		return store.BookRecord{}, s.unexpected(ctx, action, err)
	}
	return rec, nil
}

func (s *Service) unexpected(ctx context.Context, action string, err error) error {
	msg := fmt.Sprintf("Unexpected error occurred while %s", action)
	s.log.ErrorContext(ctx, msg, "error", err)
	return apperr.Service(msg, err)
}

func (s *Service) deletionFailed(ctx context.Context, id string, err error) error {
	msg := fmt.Sprintf("Error deleting book with ID %s", id)
	s.log.ErrorContext(ctx, msg, "error", err)
	return apperr.Service(msg, err)
}
