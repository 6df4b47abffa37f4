package storage_test

import (
	"context"
	"errors"
	"testing"

	"recon-engine/core/storage"
	"recon-engine/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"plain endpoint", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "recon"}},
		{"http scheme", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"https scheme", storage.Config{Endpoint: "https://s3.amazonaws.com", UseSSL: true, Region: "us-east-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "recon").Return(true, nil)
		require.NoError(t, storage.EnsureBucket(ctx, client, "recon", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "recon").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "recon", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)
		require.NoError(t, storage.EnsureBucket(ctx, client, "recon", "eu-west-1"))
		client.AssertExpectations(t)
	})

	t.Run("check fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "recon").Return(false, errors.New("denied"))
		assert.EqualError(t, storage.EnsureBucket(ctx, client, "recon", ""), "failed to check bucket recon: denied")
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	opts := minio.ListObjectsOptions{Prefix: "reports/", Recursive: true}

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "recon", opts).Return(mocks.Objects(
		minio.ObjectInfo{Key: "reports/a.json"},
		minio.ObjectInfo{Key: "reports/b.json"},
	)).Once()
	keys, err := storage.List(ctx, client, "recon", "reports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/a.json", "reports/b.json"}, keys)

	client.On("ListObjects", mock.Anything, "recon", opts).Return(mocks.Objects(
		minio.ObjectInfo{Err: errors.New("timeout")},
	)).Once()
	_, err = storage.List(ctx, client, "recon", "reports/")
	assert.EqualError(t, err, "failed to list reports/: timeout")
}
