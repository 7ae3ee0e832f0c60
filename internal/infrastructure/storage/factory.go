package storage

import (
	"context"
	"fmt"

	disputeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/dispute"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	ProviderS3   = "s3"
	ProviderStub = "stub"
)

// NewEvidenceStorage selects the evidence backend named by cfg.Provider.
// For s3 the bucket is created on first start; a failure there is logged
// and the storage is still returned so presigning keeps working once the
// backend comes up.
func NewEvidenceStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (disputeapp.EvidenceStorage, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case "", ProviderStub:
		logger.Info("Using stub evidence storage", zap.String("base_url", cfg.StubBaseURL))
		return NewStubEvidenceStorage(cfg.StubBaseURL), nil
	case ProviderS3:
		s3Storage, err := NewS3EvidenceStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			logger.Warn("Evidence bucket not ready", zap.String("bucket", cfg.Bucket), zap.Error(err))
		}
		logger.Info("Using S3 evidence storage",
			zap.String("bucket", cfg.Bucket),
			zap.String("endpoint", cfg.Endpoint),
		)
		return s3Storage, nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
