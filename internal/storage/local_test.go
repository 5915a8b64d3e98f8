package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), true)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	return store
}

func TestSaveAndOpen(t *testing.T) {
	store := newTestStore(t)

	content := "hello, blob store"
	written, err := store.Save(strings.NewReader(content), filepath.Join("2026-01-01", "blob.txt"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != int64(len(content)) {
		t.Errorf("Save wrote %d bytes, want %d", written, len(content))
	}

	f, err := store.Open(filepath.Join("2026-01-01", "blob.txt"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != content {
		t.Errorf("read back %q, want %q", got, content)
	}
}

func TestExists(t *testing.T) {
	store := newTestStore(t)

	if store.Exists("missing.bin") {
		t.Error("Exists reported a blob that was never written")
	}

	if _, err := store.Save(strings.NewReader("x"), "present.bin"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !store.Exists("present.bin") {
		t.Error("Exists did not report a written blob")
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(strings.NewReader("x"), "doomed.bin"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove("doomed.bin"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if store.Exists("doomed.bin") {
		t.Error("blob still exists after Remove")
	}

	// Removing a blob that is already gone must not fail: metadata and disk
	// are expected to diverge.
	if err := store.Remove("doomed.bin"); err != nil {
		t.Errorf("Remove of missing blob returned error: %v", err)
	}
}

func TestSaveCreatesMissingDirectories(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, true)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	blobPath := filepath.Join("a", "b", "c.bin")
	if _, err := store.Save(strings.NewReader("deep"), blobPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, blobPath)); err != nil {
		t.Errorf("blob not on disk at expected location: %v", err)
	}
}
