package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type askRequest struct {
	Question string `json:"question"`
}

// handleAsk answers a free-text question with the retrieval-augmented flow.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	ans, err := s.answerer.Ask(r.Context(), req.Question)
	if err != nil {
		s.log.Error("ask failed", "error", err)
		jsonError(w, "failed to answer question", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ans)
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  uint64 `json:"top_k"`
}

// handleSearch returns raw scored chunks for a query without asking the
// chat model. The free-text query still goes through the filter translator.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}
	if req.TopK == 0 {
		req.TopK = uint64(s.cfg.SearchTopK)
	}

	spec := s.translator.Translate(req.Query)

	vector, err := s.embedder.EmbedQuery(r.Context(), req.Query)
	if err != nil {
		s.log.Error("query embedding failed", "error", err)
		jsonError(w, "failed to embed query", http.StatusBadGateway)
		return
	}

	hits, err := s.store.Search(r.Context(), vector, *spec, req.TopK)
	if err != nil {
		s.log.Error("search failed", "error", err)
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"query": req.Query,
		"hits":  hits,
	}
	if !spec.Empty() {
		resp["filter"] = spec
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
