// Package filestore provides an abstraction for file storage operations.
//
// It defines a FileStore interface implemented by the local disk backend
// (localfs) and the MinIO backend (miniowr). Components depend on the
// interface only, so the backend is chosen at bootstrap from configuration.
package filestore

import (
	"context"
	"io"
	"time"
)

// FileStore defines the interface for file storage operations.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Upload stores the reader's content at path, replacing any existing file.
	// Returns the file info after successful upload.
	Upload(ctx context.Context, path string, reader io.Reader) (*FileInfo, error)

	// Get retrieves a file and its metadata from the specified path.
	// The caller is responsible for closing File.Content.
	Get(ctx context.Context, path string) (*File, error)

	// Stat returns file metadata without opening the content.
	// Fails with CodeFileNotFound when nothing is stored at path.
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Delete removes a file at the specified path.
	// Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the specified path.
	Exists(ctx context.Context, path string) (bool, error)
}

// File represents a stored file with its content and metadata.
type File struct {
	Content io.ReadCloser
	Info    FileInfo
}

// FileInfo contains metadata about a stored file.
type FileInfo struct {
	Path         string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}
