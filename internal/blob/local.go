package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs below a directory, which the web server exposes as static files.
type Local struct {
	root string
}

// NewLocal creates the root directory if needed.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		root = "./uploads"
	}

	if err := os.MkdirAll(root, 0o750); err != nil { //nolint: mnd
		return nil, fmt.Errorf("create media root %s: %w", root, err)
	}

	return &Local{root: root}, nil
}

// Root returns the directory blobs are written to.
func (l *Local) Root() string {
	return l.root
}

// Put writes data to key, creating intermediate directories.
func (l *Local) Put(_ context.Context, key string, data []byte, _ string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil { //nolint: mnd
		return fmt.Errorf("create media directory: %w", err)
	}

	if err := os.WriteFile(p, data, 0o640); err != nil { //nolint: mnd
		return fmt.Errorf("write media file %s: %w", key, err)
	}

	return nil
}

// Delete removes key. A missing file is not an error.
func (l *Local) Delete(_ context.Context, key string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file %s: %w", key, err)
	}

	return nil
}

func (l *Local) path(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	return filepath.Join(l.root, clean), nil
}
