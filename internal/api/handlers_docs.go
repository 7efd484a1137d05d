package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ahlawat23/resumekeeper/internal/vectorstore"
)

// handleListDocuments lists all indexed documents with their chunk counts.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context())
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []vectorstore.DocumentInfo{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleDeleteDocument removes every stored chunk of a document. The upload
// file itself stays on disk until its name is known and removed separately.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	// Find the file name before the chunks disappear so the upload can be
	// cleaned up too.
	var fileName string
	if docs, err := s.store.ListDocuments(r.Context()); err == nil {
		for _, d := range docs {
			if d.DocumentID == docID {
				fileName = d.FileName
				break
			}
		}
	}

	if err := s.store.DeleteDocument(r.Context(), docID); err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	fileRemoved := false
	if fileName != "" {
		if err := s.files.Remove(fileName); err != nil {
			s.log.Warn("upload cleanup failed", "file", fileName, "error", err)
		} else {
			fileRemoved = true
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document_id":  docID,
		"deleted":      true,
		"file_removed": fileRemoved,
	})
}
