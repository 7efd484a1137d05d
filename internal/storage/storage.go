// Package storage keeps uploaded resume files on disk so documents can be
// re-parsed and re-indexed without a fresh upload.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrTooLarge is returned when an upload exceeds the configured size cap.
var ErrTooLarge = errors.New("file exceeds size limit")

// SavedFile describes one stored upload.
type SavedFile struct {
	Name string `json:"file_name"`
	Path string `json:"path"`
	Size int64  `json:"size_bytes"`
}

// FileStore writes uploads into a single flat directory.
type FileStore struct {
	dir      string
	maxBytes int64
}

// NewFileStore creates the upload directory if needed. maxBytes <= 0 means
// no size cap.
func NewFileStore(dir string, maxBytes int64) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the upload directory path.
func (s *FileStore) Dir() string { return s.dir }

// Save streams r to disk under a sanitized version of name, enforcing the
// size cap while copying. A partial file is removed on failure.
func (s *FileStore) Save(name string, r io.Reader) (SavedFile, error) {
	name = SanitizeFilename(name)
	dest := filepath.Join(s.dir, name)

	f, err := os.Create(dest)
	if err != nil {
		return SavedFile{}, fmt.Errorf("create %s: %w", name, err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(dest)
		return SavedFile{}, fmt.Errorf("save %s: %w", name, err)
	}
	return SavedFile{Name: name, Path: dest, Size: n}, nil
}

// Open opens a stored file by its sanitized name.
func (s *FileStore) Open(name string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, SanitizeFilename(name)))
}

// List returns stored files sorted by name.
func (s *FileStore) List() ([]SavedFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}
	var out []SavedFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, SavedFile{
			Name: e.Name(),
			Path: filepath.Join(s.dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *FileStore) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, SanitizeFilename(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SanitizeFilename strips path components so uploads cannot escape the
// store directory.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
