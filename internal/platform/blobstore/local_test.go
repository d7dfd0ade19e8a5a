package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalSaveWritesUnderDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("new local store failed: %v", err)
	}

	path, err := store.Save(context.Background(), "proj_1.pdf", []byte("drawing"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("blob written outside dir: %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(content) != "drawing" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestLocalSaveFlattensTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("new local store failed: %v", err)
	}

	path, err := store.Save(context.Background(), "../../etc/evil.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("traversal escaped dir: %s", path)
	}
}
