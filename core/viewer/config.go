package viewer

import "time"

// Config holds the server-side viewer configuration.
type Config struct {
	// ModelPath is the on-disk model served to the page and configured by the API.
	ModelPath string `mapstructure:"model_path" default:"public/rotor.glb"`
	// EnvironmentURL is the HDR proxied under /api/rotor/environment.hdr.
	EnvironmentURL string `mapstructure:"environment_url" default:"https://modelviewer.dev/shared-assets/environments/neutral.hdr"`
	// FetchTimeoutSeconds bounds the environment download.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" default:"30"`
	// CacheTTLSeconds is how long the configured model stays cached.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// CacheMaxBytes caps the environment cache.
	CacheMaxBytes int64 `mapstructure:"cache_max_bytes" default:"67108864"`
}

// FetchTimeout returns the environment download timeout.
func (c Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CacheTTL returns the configured model cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
