package books

import (
	"github.com/5w1tchy/books-service/internal/models"
	"github.com/5w1tchy/books-service/internal/store"
)

func toRecord(b models.Book) store.BookRecord {
	return store.BookRecord{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedDate: b.PublishedDate.Time(),
	}
}

func toBook(rec store.BookRecord) models.Book {
	b := models.Book{
		ID:     rec.ID,
		Title:  rec.Title,
		Author: rec.Author,
		ISBN:   rec.ISBN,
	}
	if !rec.PublishedDate.IsZero() {
		b.PublishedDate = models.DateOf(rec.PublishedDate)
	}
	return b
}
