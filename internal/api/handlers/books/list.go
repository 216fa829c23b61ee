package books

import (
	"net/http"

	"github.com/5w1tchy/books-service/internal/api/httpx"
)

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	msg := MsgFound
	if len(list) == 0 {
		msg = MsgNoneFound
	}
	httpx.Success(w, http.StatusOK, msg, list)
}
