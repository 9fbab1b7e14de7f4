package rotor

import (
	"rotor-viewer/core/viewer"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new rotor feature.
func NewFeature(service *Service) *Feature {
	return &Feature{service: service, handler: NewHandler(service)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "rotor"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// ModelFeature serves the model at the path the page requests it from. It is only
// enabled when the model lives in a bucket; otherwise the public directory serves it.
type ModelFeature struct {
	service     *Service
	handler     *Handler
	fromStorage bool
}

// NewModelFeature creates the page model feature.
func NewModelFeature(service *Service, fromStorage bool) *ModelFeature {
	return &ModelFeature{service: service, handler: NewHandler(service), fromStorage: fromStorage}
}

// Name returns the name of the feature.
func (f *ModelFeature) Name() string {
	return "rotor-model"
}

// IsEnabled checks if the feature is enabled.
func (f *ModelFeature) IsEnabled() bool {
	return f.service != nil && f.fromStorage
}

// Load registers GET /rotor.glb.
func (f *ModelFeature) Load(app fiber.Router) error {
	app.Get(viewer.ModelPath, f.handler.HandleModel)
	return nil
}
