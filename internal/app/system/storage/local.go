// internal/app/system/storage/local.go

// Package storage persists uploaded course documents on local disk. Stored
// names are random so an upload can never clobber another course's file;
// the original filename is kept separately on the course record.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local stores documents under a single root directory.
type Local struct {
	root string
}

// NewLocal creates the root directory if needed and returns the store.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Local{root: abs}, nil
}

// Save writes the stream to a new file and returns its storage key. The
// original filename only contributes its extension.
func (l *Local) Save(originalName string, r io.Reader) (string, error) {
	key := uuid.NewString() + sanitizeExt(originalName)

	f, err := os.OpenFile(filepath.Join(l.root, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create document file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write document file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close document file: %w", err)
	}
	return key, nil
}

// Remove deletes a stored document. A missing file is not an error; the
// goal state is "gone".
func (l *Local) Remove(key string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove document file: %w", err)
	}
	return nil
}

// Path resolves a storage key to an absolute filesystem path.
func (l *Local) Path(key string) (string, error) {
	return l.path(key)
}

func (l *Local) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.root, key), nil
}

// sanitizeExt keeps a short, plausible extension and drops anything else.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
