package viewer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"rotor-viewer/core/scene"
)

// ModelLoader produces the model the viewer configures.
type ModelLoader interface {
	Load(ctx context.Context) (*scene.Model, error)
}

// FileLoader loads a model from the local filesystem.
type FileLoader struct {
	Path string
}

// Load implements ModelLoader.
func (l FileLoader) Load(ctx context.Context) (*scene.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scene.Open(l.Path)
}

// StreamLoader loads a model from a stream opened on demand, e.g. an object in storage.
type StreamLoader func(ctx context.Context) (io.ReadCloser, error)

// Load implements ModelLoader.
func (f StreamLoader) Load(ctx context.Context) (*scene.Model, error) {
	rc, err := f(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return scene.Decode(rc)
}

// Fetcher downloads a remote asset.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches assets over HTTP.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with a request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}
