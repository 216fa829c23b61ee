// Package books serves the /books resource over HTTP.
package books

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/5w1tchy/books-service/internal/models"
)

// Service is the book CRUD surface the handlers call.
type Service interface {
	Create(ctx context.Context, b models.Book) (models.Book, error)
	Get(ctx context.Context, id string) (models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	Update(ctx context.Context, id string, p models.BookPatch) (models.Book, error)
	Delete(ctx context.Context, id string) (bool, error)
}

const (
	MsgCreated   = "Book created successfully"
	MsgFound     = "Books found"
	MsgNoneFound = "No books found"
	MsgRetrieved = "Book retrieved successfully"
	MsgUpdated   = "Book updated successfully"
	MsgDeleted   = "Book deleted successfully"
)

type Handler struct {
	svc Service
	log *slog.Logger
}

func New(svc Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the book routes on rt.
func (h *Handler) Register(rt *httprouter.Router) {
	rt.HandlerFunc(http.MethodPost, "/books", h.Create)
	rt.HandlerFunc(http.MethodGet, "/books", h.List)
	rt.HandlerFunc(http.MethodGet, "/books/:id", h.Get)
	rt.HandlerFunc(http.MethodPut, "/books/:id", h.Update)
	rt.HandlerFunc(http.MethodDelete, "/books/:id", h.Delete)
}

func bookID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}
