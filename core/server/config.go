package server

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3050"`
	// ApiKey protects the /api routes. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// ViewsDir holds the HTML view templates.
	ViewsDir string `mapstructure:"views_dir" default:"views"`
	// PublicDir is served at the site root.
	PublicDir string `mapstructure:"public_dir" default:"public"`
	// ThreeDir is the installed rendering library package.
	ThreeDir string `mapstructure:"three_dir" default:"node_modules/three"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

const (
	// BuildPrefix serves the library's build directory.
	BuildPrefix = "/build"
	// JsmPrefix serves the library's example modules (controls, loaders).
	JsmPrefix = "/jsm"
)

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// BuildDir returns the library's build directory.
func (c Config) BuildDir() string {
	return filepath.Join(c.ThreeDir, "build")
}

// JsmDir returns the library's example modules directory.
func (c Config) JsmDir() string {
	return filepath.Join(c.ThreeDir, "examples", "jsm")
}

// ShutdownTimeout returns the graceful shutdown bound, defaulting to 10 seconds.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Validate checks that the port is a usable TCP port.
func (c Config) Validate() error {
	p, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("port %d out of range", p)
	}
	return nil
}
