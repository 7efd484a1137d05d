// Package parser turns uploaded resume files into ordered pages of plain
// text. The profile heuristics downstream are line-oriented, so every parser
// preserves line structure and emits 1-based sequential page numbers.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Ahlawat23/resumekeeper/internal/document"
)

// Parser converts raw file bytes into extracted pages.
type Parser interface {
	Parse(r io.Reader, filename string) ([]document.Page, error)
}

// SupportedExtensions lists the resume formats this service accepts.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// PDFFallback enables shelling out to pdftotext when native PDF text
// extraction fails. Set once at startup.
var PDFFallback = true

// ForFile returns the parser for a filename's extension.
func ForFile(filename string) (Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		return &PDFParser{FallbackPdftotext: PDFFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// cleanPage strips null bytes and surrounding whitespace from page text.
func cleanPage(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\x00", ""))
}

// singlePage wraps unpaginated formats as one page.
func singlePage(text string) []document.Page {
	return []document.Page{{Number: 1, Text: cleanPage(text)}}
}
