package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("invalid path")

// LocalStorage writes files beneath a fixed root directory.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	return &LocalStorage{root: abs}, nil
}

func (s *LocalStorage) Root() string {
	return s.root
}

// Resolve maps relPath to an absolute path under the root. Absolute paths
// and paths escaping the root are rejected with ErrInvalidPath.
func (s *LocalStorage) Resolve(relPath string) (string, error) {
	if strings.TrimSpace(relPath) == "" {
		return "", fmt.Errorf("%w: path is required", ErrInvalidPath)
	}
	if strings.HasPrefix(relPath, "/") || strings.HasPrefix(relPath, "\\") || filepath.IsAbs(relPath) {
		return "", fmt.Errorf("%w: %q must be relative", ErrInvalidPath, relPath)
	}

	full := filepath.Join(s.root, relPath)
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path traversal detected in %q", ErrInvalidPath, relPath)
	}
	if rel == "." {
		return "", fmt.Errorf("%w: %q points at the storage root", ErrInvalidPath, relPath)
	}
	return full, nil
}

func (s *LocalStorage) Save(ctx context.Context, relPath, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full, err := s.Resolve(relPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return full, nil
}
