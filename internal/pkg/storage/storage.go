package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("file not found")

// FileStorage stores generated artifacts such as exported reports.
type FileStorage interface {
	// Save writes the content under path and returns the stored key.
	Save(ctx context.Context, content io.Reader, path string) (string, error)

	// Open returns the stored content. It returns ErrFileNotFound for unknown keys.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// URL returns the public address of a stored key.
	URL(path string) string
}
