// Package s3 provides an S3-compatible blob store backend.
// Documents are stored as objects under a configurable key prefix in a
// single bucket, so the exchange can back onto AWS S3, MinIO, or any
// other S3-compatible service.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/storage"
)

// Config holds connection settings for the S3 backend.
type Config struct {
	// Endpoint is the S3 endpoint URL. Empty means AWS.
	Endpoint string

	// Region is the bucket region.
	Region string

	// Bucket is the bucket documents are stored in.
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// AccessKeyID and SecretAccessKey are static credentials.
	// When both are empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string

	// UsePathStyle forces path-style addressing (needed by MinIO).
	UsePathStyle bool
}

// Store implements storage.BlobStore against an S3-compatible service.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewStore creates an S3 blob store.
func NewStore(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	prefix := cfg.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: prefix,
		logger: logger.With().Str("storage", "s3").Logger(),
	}, nil
}

// Put stores the content of reader under the given filename.
func (s *Store) Put(ctx context.Context, filename string, reader io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
		Body:   reader,
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}

	s.logger.Debug().Str("filename", filename).Msg("object stored")
	return nil
}

// Get retrieves a file's content by filename.
func (s *Store) Get(ctx context.Context, filename string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return out.Body, nil
}

// Exists checks whether a file with the given filename is stored.
func (s *Store) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object: %w", err)
	}
	return true, nil
}

// List returns the filenames of all stored files.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			names = append(names, strings.TrimPrefix(aws.ToString(obj.Key), s.prefix))
		}
	}

	return names, nil
}

// key maps a filename to its object key.
func (s *Store) key(filename string) string {
	return s.prefix + filename
}

// Ensure Store implements storage.BlobStore.
var _ storage.BlobStore = (*Store)(nil)
