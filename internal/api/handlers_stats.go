package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context())
	if err != nil {
		jsonError(w, "failed to read stats: "+err.Error(), http.StatusInternalServerError)
		return
	}
	chunks := 0
	for _, d := range docs {
		chunks += d.Chunks
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"documents":   len(docs),
		"chunks":      chunks,
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
