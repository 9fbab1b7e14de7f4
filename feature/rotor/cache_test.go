package rotor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigured_IsExpired(t *testing.T) {
	assert.True(t, (&Configured{Built: time.Now()}).IsExpired())
	assert.False(t, (&Configured{Built: time.Now(), TTL: time.Minute}).IsExpired())
	assert.True(t, (&Configured{Built: time.Now().Add(-2 * time.Minute), TTL: time.Minute}).IsExpired())
}

func TestModelCache(t *testing.T) {
	c := &modelCache{}
	builds := 0
	build := func(ctx context.Context) (*Configured, error) {
		builds++
		return &Configured{Built: time.Now(), TTL: time.Minute}, nil
	}

	first, err := c.getOrBuild(context.Background(), build)
	require.NoError(t, err)
	second, err := c.getOrBuild(context.Background(), build)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)

	c.invalidate()
	third, err := c.getOrBuild(context.Background(), build)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, builds)
}

func TestModelCache_BuildError(t *testing.T) {
	c := &modelCache{}
	_, err := c.getOrBuild(context.Background(), func(ctx context.Context) (*Configured, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, c.current)
}
