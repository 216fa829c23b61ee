// Package store holds the storage-facing book record and the sentinel
// errors every store implementation reports.
package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateISBN = errors.New("duplicate isbn")
)

// BookRecord is a book as persisted. ID is empty until the first Save.
// PublishedDate is midnight UTC of the publication day.
type BookRecord struct {
	ID            string
	Title         string
	Author        string
	ISBN          string
	PublishedDate time.Time
}
