package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/Ahlawat23/resumekeeper/internal/parser"
	"github.com/Ahlawat23/resumekeeper/internal/pipeline"
	"github.com/Ahlawat23/resumekeeper/internal/storage"
)

// handleUpload saves one or more resume files and queues an ingestion job
// for each.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		// Accept a single "file" field as well.
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var results []map[string]any
	for _, fh := range files {
		filename := storage.SanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}
		saved, err := s.files.Save(filename, f)
		f.Close()
		if err != nil {
			msg := "failed to save file"
			code := ""
			if errors.Is(err, storage.ErrTooLarge) {
				msg = fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
				code = "too_large"
			}
			results = append(results, map[string]any{
				"filename": filename,
				"error":    msg,
				"code":     code,
			})
			continue
		}

		job := pipeline.NewJob(saved.Name, saved.Path)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		// A worker may already be mutating the job; read through a snapshot.
		snap := job.Snapshot()
		results = append(results, map[string]any{
			"filename":   saved.Name,
			"size_bytes": saved.Size,
			"job_id":     snap.ID,
			"status":     snap.Status,
			"poll_url":   fmt.Sprintf("/api/ingest/%s/status", snap.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}

// handleReindex re-queues every supported file in the upload directory.
// Already-indexed documents are skipped by the pipeline's dedup check.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	stored, err := s.files.List()
	if err != nil {
		jsonError(w, "failed to list uploads: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var results []map[string]any
	for _, f := range stored {
		if !parser.IsSupportedExtension(f.Name) {
			continue
		}
		job := pipeline.NewJob(f.Name, f.Path)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": f.Name,
				"error":    err.Error(),
			})
			continue
		}
		snap := job.Snapshot()
		results = append(results, map[string]any{
			"filename": f.Name,
			"job_id":   snap.ID,
			"status":   snap.Status,
			"poll_url": fmt.Sprintf("/api/ingest/%s/status", snap.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
