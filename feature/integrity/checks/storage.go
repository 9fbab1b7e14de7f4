package checks

import (
	"context"
	"fmt"

	"rotor-viewer/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes the bucket holding the model.
type StorageReport struct {
	Bucket       string `json:"bucket"`
	Object       string `json:"object"`
	BucketExists bool   `json:"bucket_exists"`
	ObjectExists bool   `json:"object_exists"`
	Size         int64  `json:"size,omitempty"`
}

// CheckStorage reports whether the bucket and the model object exist.
func CheckStorage(ctx context.Context, client storage.Client, bucket, object string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Object: object}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		return report, nil
	}

	info, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
	if storage.IsNotFound(err) {
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", object, err)
	}
	report.ObjectExists = true
	report.Size = info.Size
	return report, nil
}

// FixStorage creates the bucket when it is missing. The model itself is uploaded
// with the publish command.
func FixStorage(ctx context.Context, client storage.Client, report *StorageReport, region string, logger *zap.Logger) error {
	if report.BucketExists {
		return nil
	}
	if err := client.MakeBucket(ctx, report.Bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", report.Bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", report.Bucket))
	report.BucketExists = true
	return nil
}
