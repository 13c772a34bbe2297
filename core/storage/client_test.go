package storage_test

import (
	"context"
	"errors"
	"testing"

	"fab-catalog/core/storage"
	"fab-catalog/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "fab-data",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{Endpoint: "https://s3.amazonaws.com", UseSSL: true})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestObjectExists(t *testing.T) {
	ctx := context.Background()

	t.Run("ExactMatch", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "fab-data", mock.Anything).
			Return(objects(minio.ObjectInfo{Key: "dataset/cards.json"}))

		ok, err := storage.ObjectExists(ctx, client, "fab-data", "dataset/cards.json")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("PrefixOnly", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "fab-data", mock.Anything).
			Return(objects(minio.ObjectInfo{Key: "dataset/cards.json.bak"}))

		ok, err := storage.ObjectExists(ctx, client, "fab-data", "dataset/cards.json")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ListError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "fab-data", mock.Anything).
			Return(objects(minio.ObjectInfo{Err: errors.New("denied")}))

		_, err := storage.ObjectExists(ctx, client, "fab-data", "dataset/cards.json")
		assert.EqualError(t, err, "denied")
	})
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "cards.json", storage.JoinKey("", "cards.json"))
	assert.Equal(t, "dataset/cards.json", storage.JoinKey("dataset", "cards.json"))
	assert.Equal(t, "dataset/cards.json", storage.JoinKey("/dataset/", "cards.json"))
}
