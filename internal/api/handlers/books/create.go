package books

import (
	"net/http"

	"github.com/5w1tchy/books-service/internal/api/httpx"
	"github.com/5w1tchy/books-service/internal/models"
)

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Book
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}

	b, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	w.Header().Set("Location", "/books/"+b.ID)
	httpx.Success(w, http.StatusCreated, MsgCreated, b)
}
