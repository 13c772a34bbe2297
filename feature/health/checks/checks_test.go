package checks

import (
	"context"
	"errors"
	"testing"
	"time"

	"fab-catalog/core/database"
	"fab-catalog/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var documents = []string{"cards.json", "sets.json", "keywords.json"}

func objects(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestCheckDataset(t *testing.T) {
	t.Run("All Present", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "fab-data").Return(true, nil)
		client.On("ListObjects", mock.Anything, "fab-data", mock.Anything).
			Return(func(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
				return objects(opts.Prefix)
			})

		missing, err := CheckDataset(context.Background(), client, "fab-data", "dataset", documents)
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("Some Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "fab-data").Return(true, nil)
		client.On("ListObjects", mock.Anything, "fab-data", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "dataset/cards.json"
		})).Return(objects("dataset/cards.json"))
		client.On("ListObjects", mock.Anything, "fab-data", mock.Anything).Return(objects())

		missing, err := CheckDataset(context.Background(), client, "fab-data", "dataset", documents)
		require.NoError(t, err)
		assert.Equal(t, []string{"sets.json", "keywords.json"}, missing)
	})

	t.Run("Missing Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "fab-data").Return(false, nil)

		_, err := CheckDataset(context.Background(), client, "fab-data", "", documents)
		assert.EqualError(t, err, "bucket fab-data does not exist")
	})

	t.Run("Storage Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "fab-data").Return(false, errors.New("access denied"))

		_, err := CheckDataset(context.Background(), client, "fab-data", "", documents)
		assert.ErrorContains(t, err, "access denied")
	})
}

type widget struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:32"`
	CreatedAt time.Time
}

type gadget struct {
	ID    uint `gorm:"primaryKey"`
	Price float64
}

func TestCheckSchema(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	t.Run("Nil DB", func(t *testing.T) {
		_, err := CheckSchema(nil, &widget{})
		assert.Error(t, err)
	})

	t.Run("Missing Table", func(t *testing.T) {
		report, err := CheckSchema(db, &gadget{})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, "missing", report.Tables["gadgets"].Status)
	})

	t.Run("Matched", func(t *testing.T) {
		require.NoError(t, db.AutoMigrate(&widget{}))

		report, err := CheckSchema(db, &widget{})
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Equal(t, "sqlite", report.Driver)
		assert.Equal(t, "ok", report.Tables["widgets"].Status)
	})

	t.Run("Missing Column", func(t *testing.T) {
		require.NoError(t, db.Exec("CREATE TABLE gadgets (id integer primary key)").Error)

		report, err := CheckSchema(db, &gadget{})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, []string{"price"}, report.Tables["gadgets"].MissingColumns)
	})
}
