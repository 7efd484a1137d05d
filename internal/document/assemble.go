package document

import (
	"strings"

	"github.com/Ahlawat23/resumekeeper/internal/chunker"
	"github.com/Ahlawat23/resumekeeper/internal/resume"
)

// Assembler merges per-page chunks with the document-level profile into the
// final records. It owns no state beyond the splitter geometry.
type Assembler struct {
	splitter *chunker.Splitter
}

func NewAssembler(splitter *chunker.Splitter) *Assembler {
	return &Assembler{splitter: splitter}
}

// Assemble chunks every page and stamps each chunk with the shared profile,
// the document identity, and its own page/offset coordinates. Chunk indexes
// are 1-based within their page. Pages with no text contribute nothing.
func (a *Assembler) Assemble(doc Document, profile resume.Profile) []Record {
	var records []Record
	for _, page := range doc.Pages {
		for i, seg := range a.splitter.Split(page.Text) {
			records = append(records, Record{
				Text: seg.Text,
				Metadata: Metadata{
					Profile:    profile,
					DocumentID: doc.ID,
					File:       doc.Path,
					FileName:   doc.FileName,
					PageNo:     page.Number,
					ChunkIndex: i + 1,
					CharStart:  seg.Start,
					CharEnd:    seg.End,
				},
			})
		}
	}
	return records
}

// FullText joins page texts for document-level profile extraction.
func FullText(pages []Page) string {
	var sb strings.Builder
	for i, p := range pages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
