package storage

import (
	"context"
	"net/url"
	"strings"
	"time"

	disputeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/dispute"
)

const defaultStubBaseURL = "https://storage.example.com"

var _ disputeapp.EvidenceStorage = (*StubEvidenceStorage)(nil)

// StubEvidenceStorage returns deterministic, unsigned URLs. It is meant for
// local development and tests where no object store is running.
type StubEvidenceStorage struct {
	BaseURL string
	now     func() time.Time
}

// NewStubEvidenceStorage creates a StubEvidenceStorage rooted at baseURL
func NewStubEvidenceStorage(baseURL string) *StubEvidenceStorage {
	if baseURL == "" {
		baseURL = defaultStubBaseURL
	}
	return &StubEvidenceStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateUploadURL returns BaseURL/upload/<key>
func (s *StubEvidenceStorage) GenerateUploadURL(
	_ context.Context,
	storageKey, _ string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	return s.url("upload", storageKey, expiresIn)
}

// GenerateDownloadURL returns BaseURL/download/<key>
func (s *StubEvidenceStorage) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	return s.url("download", storageKey, expiresIn)
}

func (s *StubEvidenceStorage) url(action, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrStorageKeyRequired
	}
	if expiresIn <= 0 {
		expiresIn = defaultUploadExpiration
	}
	expiresAt := s.now().Add(expiresIn).UTC()

	q := url.Values{}
	q.Set("expires", expiresAt.Format(time.RFC3339))
	return s.BaseURL + "/" + action + "/" + storageKey + "?" + q.Encode(), expiresAt, nil
}
