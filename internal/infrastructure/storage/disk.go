// Package storage implements the resume file store on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore saves uploaded files under a base directory. Stored names are
// generated, never taken from the upload, so a crafted filename cannot
// escape the directory.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates the base directory if needed.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

// Save writes the upload to disk and returns the stored relative path.
func (s *DiskStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + sanitizeExt(filename)
	path := filepath.Join(s.baseDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return name, nil
}

// sanitizeExt keeps only a plain extension from the original filename.
func sanitizeExt(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	switch ext {
	case ".pdf", ".doc", ".docx", ".txt", ".odt":
		return ext
	}
	return ""
}
