package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"go.uber.org/zap/zaptest"
)

func TestNewEvidenceStorage(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("nil config", func(t *testing.T) {
		_, err := NewEvidenceStorage(context.Background(), nil, logger)
		assert.ErrorIs(t, err, ErrConfigRequired)
	})

	t.Run("stub by default", func(t *testing.T) {
		s, err := NewEvidenceStorage(context.Background(), &config.StorageConfig{StubBaseURL: "http://files.test"}, nil)
		require.NoError(t, err)
		stub, ok := s.(*StubEvidenceStorage)
		require.True(t, ok)
		assert.Equal(t, "http://files.test", stub.BaseURL)
	})

	t.Run("s3 returns storage even when bucket check fails", func(t *testing.T) {
		cfg := validS3Config()
		cfg.Endpoint = "http://127.0.0.1:1"
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		s, err := NewEvidenceStorage(ctx, cfg, logger)
		require.NoError(t, err)
		_, ok := s.(*S3EvidenceStorage)
		assert.True(t, ok)
	})

	t.Run("s3 config errors surface", func(t *testing.T) {
		cfg := validS3Config()
		cfg.Bucket = ""
		_, err := NewEvidenceStorage(context.Background(), cfg, logger)
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewEvidenceStorage(context.Background(), &config.StorageConfig{Provider: "gcs"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage provider")
	})
}
