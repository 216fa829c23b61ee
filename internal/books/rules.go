package books

import (
	"strings"
	"unicode/utf8"

	"github.com/5w1tchy/books-service/internal/apperr"
	"github.com/5w1tchy/books-service/internal/models"
)

const (
	MsgTitleRequired  = "Title is required and cannot be empty"
	MsgAuthorRequired = "author is required and cannot be empty"
	MsgISBNRequired   = "isbn is required"
	MsgISBNLength     = "ISBN must be either 10 or 13 characters long"
	MsgDateRequired   = "publishedDate is required"
	MsgEmptyUpdate    = "At least one field must be provided for update. Null values not accepted"
)

// Field names as they appear on the wire.
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldISBN          = "isbn"
	FieldPublishedDate = "publishedDate"
)

type rule struct {
	field   string
	ok      func(b models.Book) bool
	message string
}

// bookRules run in declaration order; the first failure is the only one reported.
var bookRules = []rule{
	{FieldTitle, func(b models.Book) bool { return notBlank(b.Title) }, MsgTitleRequired},
	{FieldAuthor, func(b models.Book) bool { return notBlank(b.Author) }, MsgAuthorRequired},
	{FieldISBN, func(b models.Book) bool { return notBlank(b.ISBN) }, MsgISBNRequired},
	{FieldISBN, func(b models.Book) bool { return validISBNLength(b.ISBN) }, MsgISBNLength},
	{FieldPublishedDate, func(b models.Book) bool { return b.PublishedDate.Valid() }, MsgDateRequired},
}

// ValidateBook checks a candidate for creation against every rule.
func ValidateBook(b models.Book) error {
	for _, r := range bookRules {
		if !r.ok(b) {
			return apperr.Validation(r.message)
		}
	}
	return nil
}

// validateField runs only the rules for one field. The error message is
// prefixed with the field name.
func validateField(field string, b models.Book) error {
	for _, r := range bookRules {
		if r.field != field {
			continue
		}
		if !r.ok(b) {
			return apperr.Validation(field + ": " + r.message)
		}
	}
	return nil
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func validISBNLength(s string) bool {
	n := utf8.RuneCountInString(s)
	return n == 10 || n == 13
}
