package views

import (
	"rotor-viewer/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// View names, resolved against the views directory.
const (
	HomeView  = "home"
	RotorView = "rotor"
)

// Handler renders the site's pages.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes registers the page routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleHome)
	app.Get("/rotor", h.HandleRotor)
}

// HandleHome renders the landing page.
func (h *Handler) HandleHome(c *fiber.Ctx) error {
	return h.render(c, HomeView)
}

// HandleRotor renders the model viewer page.
func (h *Handler) HandleRotor(c *fiber.Ctx) error {
	return h.render(c, RotorView)
}

func (h *Handler) render(c *fiber.Ctx, view string) error {
	if err := c.Render(view, nil); err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to render view", zap.String("view", view), zap.Error(err))
		return err
	}
	return nil
}
