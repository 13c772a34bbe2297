// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the catalog needs: reading the card dataset documents from a
// bucket, checking that they exist, and uploading a local dataset. This
// abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	ok, err := storage.ObjectExists(ctx, client, "fab-data", "dataset/cards.json")
package storage
