package minio

import (
	"context"
	"testing"

	"github.com/hupe1980/mcvol/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ blobstore.Store = (*Store)(nil)

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "a.json", joinKey("", "a.json"))
	assert.Equal(t, "runs/a.json", joinKey("runs", "a.json"))
	assert.Equal(t, "runs/pi/a.png", joinKey("runs", "pi/a.png"))

	s := NewStore(nil, "b", "runs/")
	assert.Equal(t, "runs/x", s.key("x"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", contentType("pi/scatter.png"))
	assert.Equal(t, "application/json", contentType("report.json"))
	assert.Equal(t, "application/octet-stream", contentType("report.json.zst"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	store := NewStore(client, "test-mcvol", "test-prefix/")
	require.NoError(t, store.EnsureBucket(ctx))

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "pi/report.json", data))

	got, err := blobstore.ReadAll(ctx, store, "pi/report.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "pi/")
	require.NoError(t, err)
	assert.Contains(t, names, "pi/report.json")

	require.NoError(t, store.Delete(ctx, "pi/report.json"))
	_, err = store.Open(ctx, "pi/report.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
