package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"go.uber.org/zap/zaptest"
)

func validS3Config() *config.StorageConfig {
	return &config.StorageConfig{
		Provider:     ProviderS3,
		Bucket:       "dispute-evidence",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	}
}

func TestNewS3EvidenceStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.StorageConfig)
		wantErr string
	}{
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }, "bucket is required"},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKey = "" }, "access key is required"},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretKey = "" }, "secret key is required"},
		{"endpoint without host", func(c *config.StorageConfig) { c.Endpoint = "http://" }, "missing host"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validS3Config()
			tt.mutate(cfg)
			_, err := NewS3EvidenceStorage(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3EvidenceStorage(nil)
		assert.ErrorIs(t, err, ErrConfigRequired)
	})
}

func TestNewS3EvidenceStorage_Defaults(t *testing.T) {
	s, err := NewS3EvidenceStorage(validS3Config())
	require.NoError(t, err)
	assert.Equal(t, "dispute-evidence", s.Bucket())
	assert.Equal(t, defaultUploadExpiration, s.uploadExpiration)
	assert.Equal(t, defaultDownloadExpiration, s.downloadExpiration)

	cfg := validS3Config()
	cfg.PresignExpiration = 5 * time.Minute
	cfg.DownloadExpiration = 2 * time.Hour
	s, err = NewS3EvidenceStorage(cfg, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, s.uploadExpiration)
	assert.Equal(t, 2*time.Hour, s.downloadExpiration)

	s, err = NewS3EvidenceStorage(cfg, WithExpirations(time.Minute, 0))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, s.uploadExpiration)
	assert.Equal(t, 2*time.Hour, s.downloadExpiration)
}

func TestNormalizeEndpoint(t *testing.T) {
	got, err := normalizeEndpoint("", false)
	require.NoError(t, err)
	assert.Equal(t, defaultEndpoint, got)

	got, err = normalizeEndpoint("minio:9000", false)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", got)

	got, err = normalizeEndpoint("s3.amazonaws.com", true)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.amazonaws.com", got)

	got, err = normalizeEndpoint("https://minio:9000", false)
	require.NoError(t, err)
	assert.Equal(t, "https://minio:9000", got)
}

func TestS3EvidenceStorage_GenerateUploadURL(t *testing.T) {
	s, err := NewS3EvidenceStorage(validS3Config())
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	t.Run("empty key", func(t *testing.T) {
		u, _, err := s.GenerateUploadURL(ctx, "", "image/png", time.Minute)
		assert.ErrorIs(t, err, ErrStorageKeyRequired)
		assert.Empty(t, u)
	})

	t.Run("presigns a path-style PUT", func(t *testing.T) {
		raw, expiresAt, err := s.GenerateUploadURL(ctx, "disputes/abc/photo.png", "image/png", 10*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, fixed.Add(10*time.Minute), expiresAt)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", u.Host)
		assert.Equal(t, "/dispute-evidence/disputes/abc/photo.png", u.Path)
		assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
		assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	})

	t.Run("falls back to configured lifetime", func(t *testing.T) {
		_, expiresAt, err := s.GenerateUploadURL(ctx, "disputes/abc/photo.png", "", 0)
		require.NoError(t, err)
		assert.Equal(t, fixed.Add(defaultUploadExpiration), expiresAt)
	})
}

func TestS3EvidenceStorage_GenerateDownloadURL(t *testing.T) {
	s, err := NewS3EvidenceStorage(validS3Config())
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
	assert.ErrorIs(t, err, ErrStorageKeyRequired)

	raw, expiresAt, err := s.GenerateDownloadURL(ctx, "disputes/abc/receipt.pdf", 0)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(defaultDownloadExpiration), expiresAt)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/dispute-evidence/disputes/abc/receipt.pdf", u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}
