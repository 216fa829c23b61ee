// Package apperr is the error taxonomy shared by the core and the HTTP
// boundary. Every failure a client can observe is an *Error with a Kind;
// the Kind alone decides the wire code and HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindFormat
	KindBadRequest
	KindDuplicate
	KindNotFound
	KindService
)

// Code is the stable error code sent on the wire.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindFormat:
		return "FORMAT_ERROR"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindDuplicate:
		return "DUPLICATE_ISBN"
	case KindNotFound:
		return "ENTITY_NOT_FOUND"
	case KindService:
		return "SERVICE_ERROR"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

func (k Kind) Status() int {
	switch k {
	case KindValidation, KindFormat, KindBadRequest, KindDuplicate:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string { return k.Code() }

// Error is a classified failure. Message is safe to show to clients;
// Err keeps the underlying cause for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// GenericMessage is what clients see for unclassified failures.
const GenericMessage = "An unexpected error occurred"

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func Format(msg string, err error) *Error {
	return &Error{Kind: KindFormat, Message: msg, Err: err}
}

func BadRequest(msg string) *Error { return &Error{Kind: KindBadRequest, Message: msg} }

func Duplicate(isbn string, err error) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf("ISBN '%s' already exists", isbn), Err: err}
}

func NotFound(id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Book with ID %s not found", id)}
}

func Service(msg string, err error) *Error {
	return &Error{Kind: KindService, Message: msg, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: GenericMessage, Err: err}
}

// From returns the *Error in err's chain, or wraps err as KindInternal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// KindOf is shorthand for From(err).Kind.
func KindOf(err error) Kind {
	return From(err).Kind
}
