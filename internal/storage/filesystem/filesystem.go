// Package filesystem provides a local-disk blob store backend.
// Files are kept in a single flat directory; the service layer has
// already rejected anything but a bare document filename by the time a
// name reaches this package.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/storage"
)

// Store implements storage.BlobStore on the local filesystem.
type Store struct {
	dataDir string
	logger  zerolog.Logger
}

// NewStore creates a filesystem store rooted at dataDir, creating the
// directory if it does not exist.
func NewStore(dataDir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{
		dataDir: dataDir,
		logger:  logger.With().Str("storage", "filesystem").Logger(),
	}, nil
}

// Put stores the content of reader under the given filename.
// Content is written to a temp file first and renamed into place, so a
// half-written upload never becomes visible to List or Get.
func (s *Store) Put(ctx context.Context, filename string, reader io.Reader) error {
	tmp, err := os.CreateTemp(s.dataDir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file content: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	target := filepath.Join(s.dataDir, filename)
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	s.logger.Debug().Str("filename", filename).Msg("file stored")
	return nil
}

// Get retrieves a file's content by filename.
func (s *Store) Get(ctx context.Context, filename string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dataDir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Exists checks whether a file with the given filename is stored.
func (s *Store) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dataDir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

// List returns the filenames of all stored files.
// Temp files from in-flight uploads are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) > 0 && name[0] == '.' {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Ensure Store implements storage.BlobStore.
var _ storage.BlobStore = (*Store)(nil)
