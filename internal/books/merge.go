package books

import (
	"github.com/5w1tchy/books-service/internal/apperr"
	"github.com/5w1tchy/books-service/internal/models"
	"github.com/5w1tchy/books-service/internal/store"
)

// Merge applies the present fields of p onto a copy of rec.
//
// An empty patch is a bad request. Every present field is validated on
// its own before anything is applied, so a failing field leaves the
// result untouched. Fields absent from p are not re-checked.
func Merge(rec store.BookRecord, p models.BookPatch) (store.BookRecord, error) {
	if p.IsEmpty() {
		return rec, apperr.BadRequest(MsgEmptyUpdate)
	}

	var candidate models.Book
	checks := make([]string, 0, 4)
	if p.Title != nil {
		candidate.Title = *p.Title
		checks = append(checks, FieldTitle)
	}
	if p.Author != nil {
		candidate.Author = *p.Author
		checks = append(checks, FieldAuthor)
	}
	if p.ISBN != nil {
		candidate.ISBN = *p.ISBN
		checks = append(checks, FieldISBN)
	}
	if p.PublishedDate.Valid() {
		candidate.PublishedDate = p.PublishedDate
		checks = append(checks, FieldPublishedDate)
	}
	for _, field := range checks {
		if err := validateField(field, candidate); err != nil {
			return rec, err
		}
	}

	merged := rec
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Author != nil {
		merged.Author = *p.Author
	}
	if p.ISBN != nil {
		merged.ISBN = *p.ISBN
	}
	if p.PublishedDate.Valid() {
		merged.PublishedDate = p.PublishedDate.Time()
	}
	return merged, nil
}
