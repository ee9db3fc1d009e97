package docsource

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source.go -package=mocks docs-search-index/internal/docsource Source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrInvalidPath is returned when a source path is not a valid slash-separated relative path.
	ErrInvalidPath = errors.New("invalid source path")
	// ErrNotRegular is returned when a source path points at something other than a regular file.
	ErrNotRegular = errors.New("source is not a regular file")
)

// Source loads raw document text.
type Source interface {
	// Load returns the raw bytes of the document at path.
	// Missing documents produce an error matching fs.ErrNotExist.
	Load(ctx context.Context, path string) ([]byte, error)
}

// FSSource reads documents from a filesystem rooted at the project root.
// It implements the Source interface.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a Source backed by fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// NewDirSource creates a Source that reads files below root on the local disk.
func NewDirSource(root string) *FSSource {
	return NewFSSource(os.DirFS(root))
}

// Load reads the document at path.
func (s *FSSource) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	info, err := fs.Stat(s.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	content, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}
