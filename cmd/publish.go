package cmd

import (
	"context"
	"fmt"
	"os"

	"rotor-viewer/core/scene"
	"rotor-viewer/core/storage"
	"rotor-viewer/feature/rotor"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the rotor model to the storage bucket",
	Long: `Validates the model (it must load and normalize) and uploads it to the configured bucket
and object, creating the bucket when it does not exist. Set STORAGE_ENABLED=true to serve it from there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(false)
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			file = rt.cfg.Viewer.ModelPath
		}

		client := rt.store
		if client == nil {
			// Publishing prepares the bucket before storage is switched on.
			if client, err = storage.NewClient(rt.cfg.Storage); err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		target := publishTarget{
			Bucket: rt.cfg.Storage.Bucket,
			Object: rt.cfg.Storage.ModelObject,
			Region: rt.cfg.Storage.Region,
		}
		info, err := publishModel(cmd.Context(), client, target, file, rt.logg)
		if err != nil {
			return err
		}
		rt.logg.Info("Model published",
			zap.String("bucket", info.Bucket),
			zap.String("object", info.Key),
			zap.Int64("size", info.Size),
			zap.String("etag", info.ETag),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
	publishCmd.Flags().String("file", "", "Model to upload (defaults to VIEWER_MODEL_PATH)")
}

type publishTarget struct {
	Bucket string
	Object string
	Region string
}

// publishModel validates file and uploads it to the target bucket.
func publishModel(ctx context.Context, client storage.Client, target publishTarget, file string, logg *zap.Logger) (minio.UploadInfo, error) {
	m, err := scene.Open(file)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	if _, err := scene.Configure(m, scene.RotorOverrides); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("model %s cannot be configured: %w", file, err)
	}

	exists, err := client.BucketExists(ctx, target.Bucket)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		logg.Info("Creating bucket", zap.String("bucket", target.Bucket))
		if err := client.MakeBucket(ctx, target.Bucket, minio.MakeBucketOptions{Region: target.Region}); err != nil {
			return minio.UploadInfo{}, fmt.Errorf("failed to create bucket %s: %w", target.Bucket, err)
		}
	}

	f, err := os.Open(file)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to stat %s: %w", file, err)
	}

	info, err := client.PutObject(ctx, target.Bucket, target.Object, f, stat.Size(), minio.PutObjectOptions{
		ContentType: rotor.ContentTypeGLB,
	})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload %s: %w", target.Object, err)
	}
	return info, nil
}
