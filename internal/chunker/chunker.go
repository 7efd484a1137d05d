package chunker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig marks an invalid splitter configuration. It is returned from
// NewSplitter before any text is processed; nothing downstream retries it.
var ErrConfig = errors.New("chunker: invalid configuration")

// Segment is one fixed-size window of page text. Start and End are rune
// offsets into the trimmed page text; the window content re-trimmed equals
// Text.
type Segment struct {
	Text  string
	Start int
	End   int
}

// Splitter cuts page text into overlapping fixed-size windows with stable
// offsets. Consecutive windows overlap by exactly the configured amount,
// except the final window which may be shorter.
type Splitter struct {
	size    int
	overlap int
}

// DefaultSize and DefaultOverlap match the ingestion defaults.
const (
	DefaultSize    = 900
	DefaultOverlap = 150
)

// NewSplitter validates the window geometry. Overlap must be strictly smaller
// than the window size or the start offset would stop advancing.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", ErrConfig, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap %d must not be negative", ErrConfig, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d", ErrConfig, overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split covers text left to right with windows of up to size runes. Empty
// input yields no segments. The output is deterministic for a given input.
func (s *Splitter) Split(text string) []Segment {
	runes := []rune(strings.TrimSpace(text))
	n := len(runes)
	if n == 0 {
		return nil
	}

	var segs []Segment
	start := 0
	for start < n {
		end := min(start+s.size, n)
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			segs = append(segs, Segment{Text: chunk, Start: start, End: end})
		}
		if end == n {
			break
		}
		start = max(end-s.overlap, 0)
	}
	return segs
}
