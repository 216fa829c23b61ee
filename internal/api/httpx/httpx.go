// Package httpx writes the response envelope and decodes request bodies.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/5w1tchy/books-service/internal/apperr"
	"github.com/5w1tchy/books-service/internal/models"
)

// Transport-level error codes outside the domain taxonomy.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeNotReady         = "SERVICE_UNAVAILABLE"
)

const (
	MsgInvalidDate  = "Invalid date format. Expected format is yyyy-MM-dd"
	MsgInvalidInput = "Invalid input format"
)

// Envelope wraps every response body.
type Envelope struct {
	StatusCode int     `json:"statusCode"`
	Message    string  `json:"message"`
	Data       any     `json:"data"`
	ErrorCode  *string `json:"errorCode"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success writes data with a null errorCode.
func Success(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{StatusCode: status, Message: message, Data: data})
}

// Fail writes an error envelope with null data.
func Fail(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, Envelope{StatusCode: status, Message: message, ErrorCode: &code})
}

// Error classifies err and writes it. 5xx causes are logged, never sent.
func Error(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	e := apperr.From(err)
	status := e.Kind.Status()
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			"request_id", RequestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"code", e.Kind.Code(),
			"error", err,
		)
	}
	Fail(w, status, e.Kind.Code(), e.Message)
}

// ReadJSON decodes a single JSON value from the body into dst. Unknown
// fields are ignored. Every failure is a FORMAT_ERROR.
func ReadJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.Format(MsgInvalidInput, err)
	}
	return nil
}

func decodeError(err error) error {
	var dateErr *models.DateFormatError
	if errors.As(err, &dateErr) {
		return apperr.Format(MsgInvalidDate, err)
	}
	return apperr.Format(MsgInvalidInput, err)
}

type ctxKey int

const ctxKeyRequestID ctxKey = iota

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, rid)
}

func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
