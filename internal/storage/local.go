package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LocalStore persists blobs under a single root directory. Blob paths are
// kept relative to the root so records stay valid if the root moves.
type LocalStore struct {
	root       string
	createDirs bool
}

// NewLocalStore creates a blob store rooted at dir.
func NewLocalStore(root string, createDirs bool) (*LocalStore, error) {
	if createDirs {
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &LocalStore{root: root, createDirs: createDirs}, nil
}

// FullPath resolves a blob path to its location on disk.
func (s *LocalStore) FullPath(blobPath string) string {
	return filepath.Join(s.root, blobPath)
}

// Save writes the blob bytes under blobPath and returns the number of bytes
// written.
func (s *LocalStore) Save(src io.Reader, blobPath string) (int64, error) {
	dst := s.FullPath(blobPath)
	if s.createDirs {
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return 0, fmt.Errorf("failed to create blob directory: %w", err)
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create blob file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, src)
	if err != nil {
		return 0, fmt.Errorf("failed to write blob: %w", err)
	}
	return written, nil
}

// Exists reports whether the blob is present on disk.
func (s *LocalStore) Exists(blobPath string) bool {
	_, err := os.Stat(s.FullPath(blobPath))
	return err == nil
}

// Open returns a reader over the blob bytes.
func (s *LocalStore) Open(blobPath string) (*os.File, error) {
	return os.Open(s.FullPath(blobPath))
}

// Remove deletes the blob. A blob that is already missing is logged and
// ignored: metadata and disk can diverge, and delete stays best-effort.
func (s *LocalStore) Remove(blobPath string) error {
	if err := os.Remove(s.FullPath(blobPath)); err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: blob already missing: %s", blobPath)
			return nil
		}
		return err
	}
	return nil
}
