package handlers

import (
	"net/http"

	"knowledgehub-backend/internal/search"
)

type SearchHandler struct {
	index *search.Index
}

func NewSearchHandler(index *search.Index) *SearchHandler {
	return &SearchHandler{index: index}
}

// Search handles GET /search?q=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results := h.index.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
