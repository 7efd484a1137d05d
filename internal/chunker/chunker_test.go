package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSplitter_OverlapMustBeSmaller(t *testing.T) {
	if _, err := NewSplitter(100, 100); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for overlap == size, got %v", err)
	}
	if _, err := NewSplitter(100, 150); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for overlap > size, got %v", err)
	}
	if _, err := NewSplitter(0, 0); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for zero size, got %v", err)
	}
	if _, err := NewSplitter(100, 20); err != nil {
		t.Fatalf("expected valid config to pass, got %v", err)
	}
}

func TestSplit_EmptyInputYieldsNoSegments(t *testing.T) {
	s, _ := NewSplitter(100, 20)
	if segs := s.Split(""); len(segs) != 0 {
		t.Errorf("expected no segments for empty input, got %d", len(segs))
	}
	if segs := s.Split("   \n\t  "); len(segs) != 0 {
		t.Errorf("expected no segments for whitespace input, got %d", len(segs))
	}
}

func TestSplit_ShortTextIsOneSegment(t *testing.T) {
	s, _ := NewSplitter(100, 20)
	segs := s.Split("  hello world  ")
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != "hello world" {
		t.Errorf("expected trimmed text, got %q", segs[0].Text)
	}
	if segs[0].Start != 0 || segs[0].End != len("hello world") {
		t.Errorf("expected offsets [0,%d], got [%d,%d]", len("hello world"), segs[0].Start, segs[0].End)
	}
}

func TestSplit_CoverageAndOverlap(t *testing.T) {
	s, _ := NewSplitter(50, 10)
	text := strings.Repeat("abcdefghij", 20) // 200 chars, no internal whitespace
	segs := s.Split(text)

	if len(segs) == 0 {
		t.Fatal("expected segments for non-empty input")
	}
	if segs[0].Start != 0 {
		t.Errorf("first segment must start at 0, got %d", segs[0].Start)
	}
	if segs[len(segs)-1].End != len(text) {
		t.Errorf("last segment must end at %d, got %d", len(text), segs[len(segs)-1].End)
	}

	runes := []rune(text)
	for i, seg := range segs {
		window := strings.TrimSpace(string(runes[seg.Start:seg.End]))
		if window != seg.Text {
			t.Errorf("segment %d: text does not occur at its offsets", i)
		}
		if i > 0 && segs[i-1].End-seg.Start != 10 && seg.End != len(text) {
			// Every non-final transition overlaps by exactly the configured amount.
			t.Errorf("segment %d: expected overlap 10, got %d", i, segs[i-1].End-seg.Start)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	s, _ := NewSplitter(40, 8)
	text := strings.Repeat("resume text with several words. ", 12)
	a := s.Split(text)
	b := s.Split(text)
	if len(a) != len(b) {
		t.Fatalf("expected identical runs, got %d vs %d segments", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("segment %d differs between runs", i)
		}
	}
}
