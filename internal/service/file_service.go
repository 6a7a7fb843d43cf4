// Package service provides business logic services for Filebridge.
package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/link"
	"github.com/stratovia/filebridge/internal/storage"
)

// allowedExtensions is the closed set of document types accepted for upload.
var allowedExtensions = map[string]bool{
	".pptx": true,
	".docx": true,
	".xlsx": true,
}

// FileService decides filename legitimacy and produces share links.
// Byte storage and retrieval belong to the blob store; this service only
// gates what goes in and translates link tokens on the way out.
type FileService struct {
	blobs  storage.BlobStore
	logger zerolog.Logger
}

// NewFileService creates a new FileService.
func NewFileService(blobs storage.BlobStore, logger zerolog.Logger) *FileService {
	return &FileService{
		blobs:  blobs,
		logger: logger.With().Str("service", "file").Logger(),
	}
}

// UploadInput contains the data needed to store a document.
type UploadInput struct {
	Filename string
	Content  io.Reader
}

// Upload validates the filename against the document allow-list and
// stores the content. Anything that is not a bare filename with an
// allowed extension is rejected before the blob store is touched.
func (s *FileService) Upload(ctx context.Context, input UploadInput) error {
	filename := input.Filename

	if filename == "" || filename != filepath.Base(filename) {
		return domain.NewDomainError(domain.ErrUnsupportedFileType, "not a plain filename", filename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return domain.NewDomainError(domain.ErrUnsupportedFileType, "only .pptx, .docx, .xlsx allowed", filename)
	}

	if err := s.blobs.Put(ctx, filename, input.Content); err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("failed to store file")
		return err
	}

	s.logger.Info().Str("filename", filename).Msg("file uploaded")
	return nil
}

// FileEntry describes one stored file in a listing.
type FileEntry struct {
	// Name is the stored filename.
	Name string `json:"name"`

	// Link is the obfuscated token to pass to the download endpoint.
	Link string `json:"link"`
}

// List returns all stored files together with their share-link tokens.
func (s *FileService) List(ctx context.Context) ([]FileEntry, error) {
	names, err := s.blobs.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list files")
		return nil, err
	}

	entries := make([]FileEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, FileEntry{
			Name: name,
			Link: link.Encode(name),
		})
	}
	return entries, nil
}

// DownloadOutput contains the result of resolving a download link.
type DownloadOutput struct {
	// Filename is the decoded filename, for the Content-Disposition header.
	Filename string

	// Content streams the file bytes; the caller must close it.
	Content io.ReadCloser
}

// Download decodes a share-link token and retrieves the file it names.
// Malformed tokens fail with domain.ErrInvalidLink; well-formed tokens
// naming a file that does not exist fail with domain.ErrFileNotFound.
// A tampered token that happens to decode to an unknown filename lands
// in the second case, which is the intended behavior.
func (s *FileService) Download(ctx context.Context, token string) (*DownloadOutput, error) {
	filename, err := link.Decode(token)
	if err != nil {
		return nil, err
	}

	// A decoded name with path separators can never match a stored file;
	// reject it before it reaches a filesystem-backed store.
	if filename == "" || filename != filepath.Base(filename) {
		return nil, domain.ErrFileNotFound
	}

	exists, err := s.blobs.Exists(ctx, filename)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("failed to check file existence")
		return nil, err
	}
	if !exists {
		return nil, domain.ErrFileNotFound
	}

	content, err := s.blobs.Get(ctx, filename)
	if err != nil {
		return nil, err
	}

	return &DownloadOutput{
		Filename: filename,
		Content:  content,
	}, nil
}
