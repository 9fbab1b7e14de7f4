package static

import (
	"rotor-viewer/core/server"

	"github.com/gofiber/fiber/v2"
)

// Mount is a directory served under a URL prefix.
type Mount struct {
	Prefix string
	Dir    string
}

// Mounts returns the static directories in registration order.
func Mounts(cfg server.Config) []Mount {
	return []Mount{
		{Prefix: "/", Dir: cfg.PublicDir},
		{Prefix: server.BuildPrefix, Dir: cfg.BuildDir()},
		{Prefix: server.JsmPrefix, Dir: cfg.JsmDir()},
	}
}

// Feature implements the loader.Feature interface.
type Feature struct {
	mounts []Mount
}

// NewFeature creates a new static feature.
func NewFeature(cfg server.Config) *Feature {
	return &Feature{mounts: Mounts(cfg)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "static"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the static mounts. Files are served as-is, without directory listings.
func (f *Feature) Load(app fiber.Router) error {
	for _, m := range f.mounts {
		app.Static(m.Prefix, m.Dir, fiber.Static{Browse: false})
	}
	return nil
}
