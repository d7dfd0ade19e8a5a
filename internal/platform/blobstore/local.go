package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local stores drawing payloads on the local filesystem under a single
// directory. Stored names are flattened so a crafted file name cannot escape
// the directory.
type Local struct {
	Dir string
}

func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{Dir: dir}, nil
}

func (l *Local) Save(_ context.Context, fileName string, content []byte) (string, error) {
	safe := filepath.Base(strings.TrimSpace(fileName))
	if safe == "" || safe == "." || safe == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}
	path := filepath.Join(l.Dir, safe)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return path, nil
}
