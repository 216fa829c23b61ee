package books

import (
	"net/http"

	"github.com/5w1tchy/books-service/internal/api/httpx"
	"github.com/5w1tchy/books-service/internal/models"
)

// Update applies a partial update. Absent, null and (for publishedDate)
// empty-string fields are left unchanged; an id in the body is ignored.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.BookPatch
	if err := httpx.ReadJSON(r, &patch); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}

	b, err := h.svc.Update(r.Context(), bookID(r), patch)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Success(w, http.StatusOK, MsgUpdated, b)
}
