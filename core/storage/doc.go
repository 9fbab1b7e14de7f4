// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client. When storage is enabled the rotor model is read from
// the configured bucket instead of the public directory, and the publish command
// uploads it there. Both AWS S3 and self-hosted MinIO work.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: prepare the target bucket.
//   - PutObject: uploads the model.
//   - GetObject: streams the model; a missing object fails immediately.
//   - StatObject: checks the model exists without downloading it.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, cfg.Storage.Bucket, cfg.Storage.ModelObject, minio.GetObjectOptions{})
package storage
