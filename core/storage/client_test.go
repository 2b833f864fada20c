package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"adherence-sync/core/storage"
	"adherence-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "payloads",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestReadObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "payloads", "zz/batch.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`[]`)), nil)

	data, err := storage.ReadObject(context.Background(), client, "payloads", "zz/batch.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	missing := new(mocks.Client)
	missing.On("GetObject", mock.Anything, "payloads", "nope.json", mock.Anything).Return(nil, errors.New("not found"))
	_, err = storage.ReadObject(context.Background(), missing, "payloads", "nope.json")
	assert.ErrorContains(t, err, "nope.json")
}

func TestListKeys(t *testing.T) {
	client := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 4)
	ch <- minio.ObjectInfo{Key: "incoming/"}
	ch <- minio.ObjectInfo{Key: "incoming/a.json"}
	ch <- minio.ObjectInfo{Key: "incoming/readme.txt"}
	ch <- minio.ObjectInfo{Key: "incoming/b.json"}
	close(ch)
	client.On("ListObjects", mock.Anything, "payloads", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	keys, err := storage.ListKeys(context.Background(), client, "payloads", "incoming/", ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"incoming/a.json", "incoming/b.json"}, keys)
}

func TestMoveObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "payloads", "incoming/a.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`[{}]`)), nil)
	client.On("PutObject", mock.Anything, "payloads", "processed/a.json", mock.Anything, int64(4), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("RemoveObject", mock.Anything, "payloads", "incoming/a.json", mock.Anything).Return(nil)

	err := storage.MoveObject(context.Background(), client, "payloads", "incoming/a.json", "processed/a.json")
	require.NoError(t, err)
	client.AssertExpectations(t)
}
