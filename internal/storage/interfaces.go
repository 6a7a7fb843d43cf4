// Package storage defines the blob store interface for Filebridge.
// The blob store persists and retrieves raw document bytes keyed by
// filename; which filenames are legitimate and who may touch them is
// decided by the service layer, not here.
package storage

import (
	"context"
	"io"
)

// BlobStore defines the interface for document storage backends.
// Implementations include the local filesystem and S3-compatible storage.
type BlobStore interface {
	// Put stores the content of reader under the given filename,
	// overwriting any existing file with the same name.
	Put(ctx context.Context, filename string, reader io.Reader) error

	// Get retrieves a file's content by filename.
	// Returns domain.ErrFileNotFound if the file does not exist.
	// The returned ReadCloser must be closed by the caller.
	Get(ctx context.Context, filename string) (io.ReadCloser, error)

	// Exists checks whether a file with the given filename is stored.
	Exists(ctx context.Context, filename string) (bool, error)

	// List returns the filenames of all stored files.
	List(ctx context.Context) ([]string, error)
}
