package document

import "testing"

func TestContentID_StableAndContentSensitive(t *testing.T) {
	a := ContentID([]byte("resume bytes"))
	b := ContentID([]byte("resume bytes"))
	c := ContentID([]byte("resume bytes!"))

	if a != b {
		t.Error("identical bytes must yield identical identifiers")
	}
	if a == c {
		t.Error("different bytes must yield different identifiers")
	}
	if len(a) != 64 {
		t.Errorf("expected sha256 hex, got length %d", len(a))
	}
}

func TestChunkID_DeterministicPerTuple(t *testing.T) {
	a := ChunkID("doc1", "cv.pdf", 1, 1)
	b := ChunkID("doc1", "cv.pdf", 1, 1)
	if a != b {
		t.Error("identical tuples must yield identical identifiers")
	}

	if ChunkID("doc1", "cv.pdf", 1, 2) == a {
		t.Error("different chunk index must change the identifier")
	}
	if ChunkID("doc1", "cv.pdf", 2, 1) == a {
		t.Error("different page must change the identifier")
	}
	if ChunkID("doc2", "cv.pdf", 1, 1) == a {
		t.Error("different document must change the identifier")
	}
}

func TestChunkID_IsUUID(t *testing.T) {
	id := ChunkID("doc1", "cv.pdf", 1, 1)
	if len(id) != 36 {
		t.Errorf("expected canonical UUID form, got %q", id)
	}
}
