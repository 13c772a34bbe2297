package checks

import (
	"context"
	"fmt"

	"fab-catalog/core/storage"
)

// CheckDataset returns the documents missing under prefix in bucket.
func CheckDataset(ctx context.Context, client storage.Client, bucket, prefix string, documents []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	missing := []string{}
	for _, name := range documents {
		found, err := storage.ObjectExists(ctx, client, bucket, storage.JoinKey(prefix, name))
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", name, err)
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
