package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
)

// fakeObjectAPI holds objects in a map keyed by bucket/key.
type fakeObjectAPI struct {
	buckets map[string]bool
	objects map[string][]byte

	bucketErr error
	getErr    error
}

func newFakeObjectAPI(buckets ...string) *fakeObjectAPI {
	f := &fakeObjectAPI{
		buckets: make(map[string]bool),
		objects: make(map[string][]byte),
	}
	for _, b := range buckets {
		f.buckets[b] = true
	}
	return f
}

func (f *fakeObjectAPI) BucketExists(_ context.Context, bucket string) (bool, error) {
	if f.bucketErr != nil {
		return false, f.bucketErr
	}
	return f.buckets[bucket], nil
}

func (f *fakeObjectAPI) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func (f *fakeObjectAPI) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", Key: key}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectAPI) PutObject(_ context.Context, bucket, key string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[bucket+"/"+key] = data
	return nil
}

func (f *fakeObjectAPI) StatObject(_ context.Context, bucket, key string) (minio.ObjectInfo, error) {
	if _, ok := f.objects[bucket+"/"+key]; !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", Key: key}
	}
	return minio.ObjectInfo{Key: key}, nil
}

func (f *fakeObjectAPI) RemoveObject(_ context.Context, bucket, key string) error {
	delete(f.objects, bucket+"/"+key)
	return nil
}

func testStore(t *testing.T) (*TextStore, *fakeObjectAPI) {
	t.Helper()
	api := newFakeObjectAPI("litintel-texts")
	client := &Client{api: api, bucket: "litintel-texts", logger: logging.NewNopLogger()}
	return NewTextStore(client), api
}

func TestTextStoreRoundTrip(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	const text = "The tenant reported damp and mould on 3 March."
	require.NoError(t, store.StoreText(ctx, "case-1/doc-1.txt", text))

	got, err := store.FetchText(ctx, "case-1/doc-1.txt")
	require.NoError(t, err)
	assert.Equal(t, text, got)

	ok, err := store.HasText(ctx, "case-1/doc-1.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFetchTextMissingKey(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.FetchText(context.Background(), "case-1/missing.txt")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDocumentNotFound))
}

func TestFetchTextTransportError(t *testing.T) {
	store, api := testStore(t)
	api.getErr = errors.New("connection reset")

	_, err := store.FetchText(context.Background(), "case-1/doc-1.txt")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorageError))
}

func TestRemoveText(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.StoreText(ctx, "case-2/doc.txt", "text"))
	require.NoError(t, store.RemoveText(ctx, "case-2/doc.txt"))

	ok, err := store.HasText(ctx, "case-2/doc.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	// removing again is a no-op
	assert.NoError(t, store.RemoveText(ctx, "case-2/doc.txt"))
}

func TestEnsureBucketCreatesMissing(t *testing.T) {
	api := newFakeObjectAPI()
	client := &Client{api: api, bucket: "litintel-texts", logger: logging.NewNopLogger()}

	require.NoError(t, client.ensureBucket(context.Background()))
	assert.True(t, api.buckets["litintel-texts"])
}

func TestHealthCheck(t *testing.T) {
	api := newFakeObjectAPI("litintel-texts")
	client := &Client{api: api, bucket: "litintel-texts", logger: logging.NewNopLogger()}
	assert.NoError(t, client.HealthCheck(context.Background()))

	api.bucketErr = errors.New("dial timeout")
	assert.Error(t, client.HealthCheck(context.Background()))
}
