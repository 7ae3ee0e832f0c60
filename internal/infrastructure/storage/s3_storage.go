// Package storage provides presigned-URL object storage for dispute evidence.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	disputeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultUploadExpiration   = 15 * time.Minute
	defaultDownloadExpiration = time.Hour
	defaultRegion             = "us-east-1"
	defaultEndpoint           = "http://localhost:9000"
)

var (
	ErrConfigRequired     = errors.New("storage configuration is required")
	ErrStorageKeyRequired = errors.New("storage key is required")
)

var _ disputeapp.EvidenceStorage = (*S3EvidenceStorage)(nil)

// S3EvidenceStorage issues presigned PUT and GET URLs against any
// S3-compatible backend (AWS S3, MinIO, RustFS).
type S3EvidenceStorage struct {
	client             *s3.Client
	presignClient      *s3.PresignClient
	bucket             string
	uploadExpiration   time.Duration
	downloadExpiration time.Duration
	logger             *zap.Logger
	now                func() time.Time
}

// S3Option configures an S3EvidenceStorage
type S3Option func(*S3EvidenceStorage)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) S3Option {
	return func(s *S3EvidenceStorage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExpirations overrides the default upload and download URL lifetimes
func WithExpirations(upload, download time.Duration) S3Option {
	return func(s *S3EvidenceStorage) {
		if upload > 0 {
			s.uploadExpiration = upload
		}
		if download > 0 {
			s.downloadExpiration = download
		}
	}
}

// NewS3EvidenceStorage creates an S3EvidenceStorage from configuration
func NewS3EvidenceStorage(cfg *config.StorageConfig, opts ...S3Option) (*S3EvidenceStorage, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint, err := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	storage := &S3EvidenceStorage{
		client:             client,
		presignClient:      s3.NewPresignClient(client),
		bucket:             cfg.Bucket,
		uploadExpiration:   defaultUploadExpiration,
		downloadExpiration: defaultDownloadExpiration,
		logger:             zap.NewNop(),
		now:                time.Now,
	}
	WithExpirations(cfg.PresignExpiration, cfg.DownloadExpiration)(storage)
	for _, opt := range opts {
		opt(storage)
	}

	return storage, nil
}

func normalizeEndpoint(endpoint string, useSSL bool) (string, error) {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if useSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid storage endpoint %q: missing host", endpoint)
	}
	return endpoint, nil
}

// EnsureBucket creates the evidence bucket if it does not exist
func (s *S3EvidenceStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating evidence bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// GenerateUploadURL presigns a PUT for storageKey. A non-positive expiresIn
// falls back to the configured upload lifetime.
func (s *S3EvidenceStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrStorageKeyRequired
	}
	if expiresIn <= 0 {
		expiresIn = s.uploadExpiration
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := s.presignClient.PresignPutObject(ctx, input, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	s.logger.Debug("Presigned evidence upload",
		zap.String("object_key", storageKey),
		zap.Duration("expires_in", expiresIn),
	)
	return req.URL, s.now().Add(expiresIn), nil
}

// GenerateDownloadURL presigns a GET for storageKey
func (s *S3EvidenceStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrStorageKeyRequired
	}
	if expiresIn <= 0 {
		expiresIn = s.downloadExpiration
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate download URL: %w", err)
	}
	return req.URL, s.now().Add(expiresIn), nil
}

// Bucket returns the evidence bucket name
func (s *S3EvidenceStorage) Bucket() string {
	return s.bucket
}
