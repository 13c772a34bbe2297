package cards

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fab-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// Publish validates the dataset in dir and uploads its documents to bucket
// under prefix, creating the bucket when it does not exist. Nothing is uploaded
// when the dataset does not load.
func Publish(ctx context.Context, client storage.Client, bucket, region, prefix, dir string) ([]minio.UploadInfo, error) {
	if err := NewIndex(DirSource{Dir: dir}, nil, 1).Load(ctx); err != nil {
		return nil, fmt.Errorf("refusing to publish invalid dataset: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	uploads := make([]minio.UploadInfo, 0, len(Documents))
	for _, name := range Documents {
		info, err := putDocument(ctx, client, bucket, storage.JoinKey(prefix, name), filepath.Join(dir, name))
		if err != nil {
			return uploads, err
		}
		uploads = append(uploads, info)
	}
	return uploads, nil
}

func putDocument(ctx context.Context, client storage.Client, bucket, key, path string) (minio.UploadInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	info, err := client.PutObject(ctx, bucket, key, f, stat.Size(), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return info, nil
}
