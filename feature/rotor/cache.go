package rotor

import (
	"context"
	"sync"
	"time"

	"rotor-viewer/core/scene"
	"rotor-viewer/core/viewer"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"
)

// Configured is the rotor model after configuration, encoded as GLB.
type Configured struct {
	// GLB is the baked model.
	GLB []byte
	// Report describes the configuration run.
	Report scene.Report
	// Source is where the model was read from.
	Source string
	// Built is the timestamp when this model was configured.
	Built time.Time
	// TTL is the time-to-live of the cached model.
	TTL time.Duration
}

// IsExpired returns true if the configured model has outlived its TTL.
func (c *Configured) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

type modelCache struct {
	mu      sync.RWMutex
	current *Configured
	sf      singleflight.Group
}

// getOrBuild returns the cached model, or builds it once for all concurrent callers.
func (c *modelCache) getOrBuild(ctx context.Context, build func(context.Context) (*Configured, error)) (*Configured, error) {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()

	if current != nil && !current.IsExpired() {
		return current, nil
	}

	result, err, _ := c.sf.Do("model", func() (any, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		current := c.current
		c.mu.RUnlock()
		if current != nil && !current.IsExpired() {
			return current, nil
		}

		fresh, err := build(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.current = fresh
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Configured), nil
}

func (c *modelCache) invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

// environmentCache holds downloaded environment maps keyed by URL.
type environmentCache struct {
	cache   *ristretto.Cache[string, []byte]
	fetcher viewer.Fetcher
	sf      singleflight.Group
}

func newEnvironmentCache(maxBytes int64, fetcher viewer.Fetcher) (*environmentCache, error) {
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e3,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &environmentCache{cache: cache, fetcher: fetcher}, nil
}

func (e *environmentCache) get(ctx context.Context, url string) ([]byte, error) {
	if data, found := e.cache.Get(url); found {
		return data, nil
	}

	result, err, _ := e.sf.Do(url, func() (any, error) {
		data, err := e.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		e.cache.Set(url, data, int64(len(data)))
		e.cache.Wait()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (e *environmentCache) close() {
	e.cache.Close()
}
