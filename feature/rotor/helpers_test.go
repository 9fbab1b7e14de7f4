package rotor_test

import (
	"context"
	"sync/atomic"
	"testing"

	"rotor-viewer/core/database"
	"rotor-viewer/core/scene"
	"rotor-viewer/core/viewer"
	"rotor-viewer/feature/rotor"
	"rotor-viewer/feature/rotor/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testModel = "testdata/rotor.gltf"

// countingLoader counts model loads.
type countingLoader struct {
	inner viewer.ModelLoader
	calls atomic.Int32
}

func (l *countingLoader) Load(ctx context.Context) (*scene.Model, error) {
	l.calls.Add(1)
	return l.inner.Load(ctx)
}

func memoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func newService(t *testing.T, opts rotor.Options) *rotor.Service {
	t.Helper()
	if opts.Loader == nil {
		opts.Loader = viewer.FileLoader{Path: testModel}
	}
	if opts.Source == "" {
		opts.Source = "file:" + testModel
	}
	if opts.Fetcher == nil {
		opts.Fetcher = viewer.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
			return []byte("#?RADIANCE\n"), nil
		})
	}
	opts.Logger = zap.NewNop()
	svc, err := rotor.NewService(opts)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}
