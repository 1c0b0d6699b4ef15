// Package minio holds the extracted-text object store.  Document extraction
// writes the full text of each filed document here; the case repository pulls
// it back when a stored row carries an object key instead of inline text.
package minio

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
)

// objectAPI is the slice of the minio SDK the text store needs.  Tests swap
// in a map-backed fake.
type objectAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64) error
	StatObject(ctx context.Context, bucket, key string) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucket, key string) error
}

// sdkAPI adapts *minio.Client to objectAPI.
type sdkAPI struct {
	client *minio.Client
}

func (a sdkAPI) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return a.client.BucketExists(ctx, bucket)
}

func (a sdkAPI) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return a.client.MakeBucket(ctx, bucket, opts)
}

func (a sdkAPI) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return a.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
}

func (a sdkAPI) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64) error {
	_, err := a.client.PutObject(ctx, bucket, key, body, size, minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	return err
}

func (a sdkAPI) StatObject(ctx context.Context, bucket, key string) (minio.ObjectInfo, error) {
	return a.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
}

func (a sdkAPI) RemoveObject(ctx context.Context, bucket, key string) error {
	return a.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}

// Client wraps the object store connection for one bucket.
type Client struct {
	api    objectAPI
	bucket string
	logger logging.Logger
}

// NewClient connects to the object store and ensures the configured bucket
// exists.
func NewClient(cfg config.MinioConfig, logger logging.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, apperrors.InvalidParam("object store requires an endpoint")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "litintel-texts"
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorageError, "failed to create object store client")
	}

	c := &Client{
		api:    sdkAPI{client: mc},
		bucket: bucket,
		logger: logger.Named("object_store"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Info("object store connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", bucket))
	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageError, "failed to reach object store").
			WithDetail(c.bucket)
	}
	if exists {
		return nil
	}
	if err := c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageError, "failed to create bucket").
			WithDetail(c.bucket)
	}
	c.logger.Info("bucket created", logging.String("bucket", c.bucket))
	return nil
}

// Bucket reports the bucket this client operates on.
func (c *Client) Bucket() string { return c.bucket }

// HealthCheck verifies the bucket is still reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageError, "object store unreachable")
	}
	if !exists {
		return apperrors.New(apperrors.ErrCodeStorageError, "bucket missing").WithDetail(c.bucket)
	}
	return nil
}
