package cards

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fab-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// Dataset document names, identical for every Source.
const (
	CardsDocument    = "cards.json"
	SetsDocument     = "sets.json"
	KeywordsDocument = "keywords.json"
)

// Documents lists every document a load reads.
var Documents = []string{CardsDocument, SetsDocument, KeywordsDocument}

// Source opens dataset documents by name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Describe returns a human readable location for logs.
	Describe() string
}

// DirSource reads documents from a local directory.
type DirSource struct {
	Dir string
}

// Open opens dir/name.
func (s DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}

func (s DirSource) Describe() string {
	return "dir:" + s.Dir
}

// StorageSource reads documents from an object storage bucket.
type StorageSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// Open fetches bucket/prefix/name.
func (s StorageSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := storage.JoinKey(s.Prefix, name)
	r, err := s.Client.GetObject(ctx, s.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from bucket %s: %w", key, s.Bucket, err)
	}
	return r, nil
}

func (s StorageSource) Describe() string {
	return "s3://" + storage.JoinKey(s.Bucket, storage.JoinKey(s.Prefix, ""))
}

// NewSource builds the Source selected by cfg.Source.
func NewSource(cfg Config, client storage.Client, bucket string) (Source, error) {
	switch cfg.Source {
	case "", SourceFile:
		return DirSource{Dir: cfg.DataDir}, nil
	case SourceStorage:
		if client == nil {
			return nil, fmt.Errorf("storage source selected but no storage client configured")
		}
		return StorageSource{Client: client, Bucket: bucket, Prefix: cfg.Prefix}, nil
	default:
		return nil, fmt.Errorf("unknown card source %q", cfg.Source)
	}
}
