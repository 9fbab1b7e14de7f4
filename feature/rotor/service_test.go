package rotor_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rotor-viewer/core/scene"
	"rotor-viewer/core/viewer"
	"rotor-viewer/feature/rotor"
	"rotor-viewer/feature/rotor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_RequiresLoader(t *testing.T) {
	_, err := rotor.NewService(rotor.Options{})
	assert.Error(t, err)
}

func TestService_Model(t *testing.T) {
	db := memoryDB(t)
	svc := newService(t, rotor.Options{CacheTTL: time.Minute, DB: db})

	configured, err := svc.Model(context.Background(), "ray-1")
	require.NoError(t, err)

	report := configured.Report
	assert.Equal(t, scene.PartNames, report.Found)
	assert.Empty(t, report.Missing)
	assert.InDelta(t, 0.75, report.Normalization.Scale, 1e-9)
	assert.Equal(t, "file:"+testModel, configured.Source)

	// The baked GLB decodes and keeps the overrides.
	m, err := scene.Decode(bytes.NewReader(configured.GLB))
	require.NoError(t, err)
	var shaft *scene.Node
	m.Root.Traverse(func(n *scene.Node) {
		if n.IsMesh() && n.Name == "Shaft002" {
			shaft = n
		}
	})
	require.NotNil(t, shaft)
	assert.InDelta(t, 1.0, shaft.Material.Metalness, 1e-9)
	assert.InDelta(t, 0.2, shaft.Material.Roughness, 1e-9)

	again, err := svc.Model(context.Background(), "ray-2")
	require.NoError(t, err)
	assert.Same(t, configured, again)

	loads, err := svc.Loads(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, loads, 1)
	assert.Equal(t, "ray-1", loads[0].RayID)
	assert.Equal(t, scene.PartNames, models.SplitParts(loads[0].PartsFound))
	assert.Empty(t, models.SplitParts(loads[0].PartsMissing))
}

func TestService_ModelConcurrent(t *testing.T) {
	loader := &countingLoader{inner: viewer.FileLoader{Path: testModel}}
	svc := newService(t, rotor.Options{Loader: loader, CacheTTL: time.Minute})

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Model(context.Background(), ""); err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
	assert.EqualValues(t, 1, loader.calls.Load())
}

func TestService_ModelExpired(t *testing.T) {
	loader := &countingLoader{inner: viewer.FileLoader{Path: testModel}}
	svc := newService(t, rotor.Options{Loader: loader})

	_, err := svc.Model(context.Background(), "")
	require.NoError(t, err)
	_, err = svc.Model(context.Background(), "")
	require.NoError(t, err)

	// A zero TTL disables caching.
	assert.EqualValues(t, 2, loader.calls.Load())
}

func TestService_Refresh(t *testing.T) {
	loader := &countingLoader{inner: viewer.FileLoader{Path: testModel}}
	svc := newService(t, rotor.Options{Loader: loader, CacheTTL: time.Hour})

	first, err := svc.Model(context.Background(), "")
	require.NoError(t, err)
	second, err := svc.Refresh(context.Background(), "")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.EqualValues(t, 2, loader.calls.Load())
}

func TestService_ModelErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		svc := newService(t, rotor.Options{Loader: viewer.FileLoader{Path: "testdata/absent.glb"}, Source: "file:testdata/absent.glb"})
		_, err := svc.Model(context.Background(), "")
		assert.ErrorContains(t, err, "testdata/absent.glb")
	})

	t.Run("StreamError", func(t *testing.T) {
		loader := viewer.StreamLoader(func(ctx context.Context) (io.ReadCloser, error) {
			return nil, assert.AnError
		})
		svc := newService(t, rotor.Options{Loader: loader})
		_, err := svc.Model(context.Background(), "")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestService_Environment(t *testing.T) {
	var calls atomic.Int32
	fetcher := viewer.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		calls.Add(1)
		assert.Equal(t, "https://example.com/env.hdr", url)
		return []byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n"), nil
	})
	svc := newService(t, rotor.Options{EnvironmentURL: "https://example.com/env.hdr", Fetcher: fetcher})

	data, err := svc.Environment(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "RADIANCE")

	_, err = svc.Environment(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestService_EnvironmentError(t *testing.T) {
	fetcher := viewer.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return nil, errors.New("unreachable")
	})
	svc := newService(t, rotor.Options{Fetcher: fetcher})

	_, err := svc.Environment(context.Background())
	assert.ErrorContains(t, err, "unreachable")
	assert.ErrorContains(t, err, viewer.EnvironmentURL)
}

func TestService_LoadsDisabled(t *testing.T) {
	svc := newService(t, rotor.Options{})
	_, err := svc.Loads(context.Background(), 10)
	assert.ErrorIs(t, err, rotor.ErrHistoryDisabled)
}
