// Package memory is an in-process book store. It keeps insertion order and
// enforces ISBN uniqueness the same way the database-backed stores do.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/5w1tchy/books-service/internal/store"
)

type Store struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]store.BookRecord
	byISBN map[string]string
}

func New() *Store {
	return &Store{
		byID:   make(map[string]store.BookRecord),
		byISBN: make(map[string]string),
	}
}

// Save inserts rec when it has no ID and replaces the stored record otherwise.
func (s *Store) Save(ctx context.Context, rec store.BookRecord) (store.BookRecord, error) {
	if err := ctx.Err(); err != nil {
		return store.BookRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		if _, taken := s.byISBN[rec.ISBN]; taken {
			return store.BookRecord{}, store.ErrDuplicateISBN
		}
		rec.ID = uuid.NewString()
		s.byID[rec.ID] = rec
		s.byISBN[rec.ISBN] = rec.ID
		s.order = append(s.order, rec.ID)
		return rec, nil
	}

	old, ok := s.byID[rec.ID]
	if !ok {
		return store.BookRecord{}, store.ErrNotFound
	}
	if owner, taken := s.byISBN[rec.ISBN]; taken && owner != rec.ID {
		return store.BookRecord{}, store.ErrDuplicateISBN
	}
	delete(s.byISBN, old.ISBN)
	s.byISBN[rec.ISBN] = rec.ID
	s.byID[rec.ID] = rec
	return rec, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (store.BookRecord, error) {
	if err := ctx.Err(); err != nil {
		return store.BookRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return store.BookRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *Store) FindAll(ctx context.Context) ([]store.BookRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.BookRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, rec store.BookRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.byID[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.byID, rec.ID)
	delete(s.byISBN, old.ISBN)
	for i, id := range s.order {
		if id == rec.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAll empties the store.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.byID = make(map[string]store.BookRecord)
	s.byISBN = make(map[string]string)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }
