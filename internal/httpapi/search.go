package httpapi

import (
	"net/http"
	"strings"

	"whatsupp/internal/api"
	"whatsupp/internal/supplement"
)

const (
	searchLimit = supplement.MaxResults
	testDBLimit = 5
)

type SearchResponse struct {
	Query   string              `json:"query"`
	Results []supplement.Record `json:"results"`
}

// Search is a plain substring match; there is no ranking.
func (h Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	results, err := h.Supplements.Search(r.Context(), q, searchLimit)
	if err != nil {
		h.datastoreFailed(w, r, "search", err)
		return
	}
	if results == nil {
		results = []supplement.Record{}
	}

	api.WriteJSON(w, http.StatusOK, SearchResponse{Query: q, Results: results})
}

// TestDB is a connectivity check that returns a few raw rows.
func (h Handlers) TestDB(w http.ResponseWriter, r *http.Request) {
	data, err := h.Supplements.List(r.Context(), testDBLimit)
	if err != nil {
		h.datastoreFailed(w, r, "test-db", err)
		return
	}
	if data == nil {
		data = []supplement.Record{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"data": data})
}
