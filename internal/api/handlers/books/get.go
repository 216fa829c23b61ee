package books

import (
	"net/http"

	"github.com/5w1tchy/books-service/internal/api/httpx"
)

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), bookID(r))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Success(w, http.StatusOK, MsgRetrieved, b)
}
