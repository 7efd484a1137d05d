package document

import (
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"
)

// ContentID fingerprints raw document bytes. Re-ingesting byte-identical
// files yields the same identifier; any content change yields a new one.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

// ChunkID derives a name-based UUID from the chunk's stable coordinates so
// re-upserts overwrite instead of duplicating.
func ChunkID(documentID, fileName string, pageNo, chunkIndex int) string {
	basis := fmt.Sprintf("%s::%s::p%d::c%d", documentID, fileName, pageNo, chunkIndex)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(basis)).String()
}
