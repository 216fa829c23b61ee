package books

import (
	"net/http"

	"github.com/5w1tchy/books-service/internal/api/httpx"
)

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.Delete(r.Context(), bookID(r))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Success(w, http.StatusOK, MsgDeleted, ok)
}
