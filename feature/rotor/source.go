package rotor

import (
	"context"
	"fmt"
	"io"

	"rotor-viewer/core/storage"
	"rotor-viewer/core/viewer"

	"github.com/minio/minio-go/v7"
)

// NewModelSource picks where the model is read from. The bucket is used when storage
// is enabled and a client is available, otherwise the model path on disk.
// The returned string describes the source for logs and the load history.
func NewModelSource(cfg viewer.Config, store storage.Config, client storage.Client) (viewer.ModelLoader, string) {
	if store.Enabled && client != nil {
		bucket, object := store.Bucket, store.ModelObject
		load := viewer.StreamLoader(func(ctx context.Context) (io.ReadCloser, error) {
			rc, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
			if err != nil {
				return nil, fmt.Errorf("failed to get %s from bucket %s: %w", object, bucket, err)
			}
			return rc, nil
		})
		return load, fmt.Sprintf("s3://%s/%s", bucket, object)
	}
	return viewer.FileLoader{Path: cfg.ModelPath}, "file:" + cfg.ModelPath
}
