package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryllundy/gitlab-dashwatch-sub001/blobstore"
)

// TestIntegration_MinioStore requires a running MinIO instance.
// Skip if not available.
func TestIntegration_MinioStore(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-dashwatch"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := New(client, bucket, "test-prefix/")

	data := []byte("snapshot payload")
	require.NoError(t, store.Set(ctx, "snapshot", data))

	got, err := store.Get(ctx, "snapshot")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Missing keys map to the store-level sentinel.
	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Remove(ctx, "snapshot"))
	_, err = store.Get(ctx, "snapshot")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	// Removing an absent key is not an error.
	require.NoError(t, store.Remove(ctx, "snapshot"))
}
