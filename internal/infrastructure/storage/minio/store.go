package minio

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"

	apperrors "github.com/casefort/LitIntel/pkg/errors"
)

// TextStore reads and writes extracted document text.  It satisfies the case
// repository's text fetch interface.
type TextStore struct {
	client *Client
}

// NewTextStore builds a text store over the connected client.
func NewTextStore(client *Client) *TextStore {
	return &TextStore{client: client}
}

// FetchText reads the full extracted text stored under key.
func (s *TextStore) FetchText(ctx context.Context, key string) (string, error) {
	body, err := s.client.api.GetObject(ctx, s.client.bucket, key)
	if err != nil {
		return "", mapObjectError(err, key)
	}
	defer body.Close()

	// The SDK defers the real request to the first read, so missing keys
	// surface here rather than on GetObject.
	data, err := io.ReadAll(body)
	if err != nil {
		return "", mapObjectError(err, key)
	}
	return string(data), nil
}

// StoreText writes extracted text under key, overwriting any prior version.
func (s *TextStore) StoreText(ctx context.Context, key, text string) error {
	reader := strings.NewReader(text)
	if err := s.client.api.PutObject(ctx, s.client.bucket, key, reader, int64(reader.Len())); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageError, "failed to store document text").
			WithDetail(key)
	}
	return nil
}

// RemoveText deletes the text stored under key.  Removing a missing key is
// not an error.
func (s *TextStore) RemoveText(ctx context.Context, key string) error {
	if err := s.client.api.RemoveObject(ctx, s.client.bucket, key); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageError, "failed to remove document text").
			WithDetail(key)
	}
	return nil
}

// HasText reports whether text exists under key.
func (s *TextStore) HasText(ctx context.Context, key string) (bool, error) {
	_, err := s.client.api.StatObject(ctx, s.client.bucket, key)
	if err == nil {
		return true, nil
	}
	if isMissingObject(err) {
		return false, nil
	}
	return false, apperrors.Wrap(err, apperrors.ErrCodeStorageError, "failed to stat document text").
		WithDetail(key)
}

func mapObjectError(err error, key string) error {
	if isMissingObject(err) {
		return apperrors.New(apperrors.ErrCodeDocumentNotFound, "document text not found").
			WithDetail(key)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeStorageError, "failed to fetch document text").
		WithDetail(key)
}

func isMissingObject(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}

// compile-time check that TextStore plugs into the case repository
var _ interface {
	FetchText(ctx context.Context, key string) (string, error)
} = (*TextStore)(nil)
