// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow interface used to store member
// photos. Both AWS S3 and self-hosted MinIO instances are supported.
//
// # Client Interface
//
// The Client interface makes it easy to mock storage interactions in unit
// tests (see core/storage/mocks).
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//   - RemoveObject: Deletes a replaced photo.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
//	url := cfg.Storage.PhotoURL(key)
package storage
