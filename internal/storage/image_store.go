// Package storage holds item images on the local filesystem. Every stored
// file is named <item id>.jpg under a single root directory, whatever the
// original upload was called.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type ImageStore struct {
	root    string
	allowed map[string]struct{}
}

func NewImageStore(root string, allowedExts []string) *ImageStore {
	allowed := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}
	return &ImageStore{root: root, allowed: allowed}
}

// Allowed reports whether the upload filename carries an accepted extension.
// A name without any extension is never allowed.
func (s *ImageStore) Allowed(filename string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	_, ok := s.allowed[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

func (s *ImageStore) FileName(id uint64) string {
	return fmt.Sprintf("%d.jpg", id)
}

func (s *ImageStore) Path(id uint64) string {
	return filepath.Join(s.root, s.FileName(id))
}

func (s *ImageStore) Exists(id uint64) bool {
	info, err := os.Stat(s.Path(id))
	return err == nil && !info.IsDir()
}

// Save streams src into the store under the item's canonical name. The write
// goes to a temp file first and is renamed into place, so a half-written
// upload never appears under a servable name.
func (s *ImageStore) Save(id uint64, src io.Reader) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(s.root, ".tmp-"+uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.Path(id))
}
