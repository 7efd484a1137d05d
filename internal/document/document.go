// Package document holds the ingestion data model: pages in, retrieval-ready
// records out. Records carry the chunk text plus a flat metadata payload the
// vector store can index and filter on.
package document

import (
	"github.com/Ahlawat23/resumekeeper/internal/resume"
)

// Page is one page of extracted text, 1-based and sequential. The text is
// already stripped of null bytes and trimmed by the parser.
type Page struct {
	Number int
	Text   string
}

// Document is one source file with its content-derived identifier.
type Document struct {
	ID       string // sha256 hex of the raw file bytes
	FileName string
	Path     string
	Pages    []Page
}

// Metadata is the flat payload attached to every chunk: the document-level
// candidate profile merged with chunk tracking fields. All values are
// JSON-representable scalars or lists; roles and education are the only
// list-of-mapping fields.
type Metadata struct {
	resume.Profile

	DocumentID string `json:"document_id"`
	File       string `json:"file,omitempty"`
	FileName   string `json:"file_name"`
	PageNo     int    `json:"page_no"`
	ChunkIndex int    `json:"chunk_index"`
	CharStart  int    `json:"char_start"`
	CharEnd    int    `json:"char_end"`
}

// Record is one (text, metadata) pair ready for embedding and upsert.
type Record struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// PointID returns the deterministic store identifier for this record.
func (r Record) PointID() string {
	m := r.Metadata
	return ChunkID(m.DocumentID, m.FileName, m.PageNo, m.ChunkIndex)
}
