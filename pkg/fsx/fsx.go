package fsx

import (
	"context"
	"io"
)

// FileReader is the read-only subset of FileSystem. Services that only
// consume stored files should depend on this instead of the full interface.
type FileReader interface {
	// ReadFile returns the full contents of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadFileStream opens the file at path for streaming reads.
	// The caller owns the returned closer.
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a file is present at path.
	Exists(ctx context.Context, path string) (bool, error)
}

// FileSystem abstracts blob storage behind filesystem-like operations.
type FileSystem interface {
	FileReader

	// WriteFile stores data at path, replacing any existing file.
	WriteFile(ctx context.Context, path string, data []byte) error

	// WriteFileStream stores the contents of r at path.
	WriteFileStream(ctx context.Context, path string, r io.Reader) error

	// DeleteFile removes the file at path. Deleting a missing file is not
	// an error.
	DeleteFile(ctx context.Context, path string) error

	// Join builds a storage path from segments using the backend's separator.
	Join(parts ...string) string
}
