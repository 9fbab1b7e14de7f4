package rotor

import (
	"errors"
	"net/http"

	"rotor-viewer/core/logger"
	"rotor-viewer/core/middleware/rayid"
	"rotor-viewer/feature/rotor/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	// ContentTypeGLB is the media type of binary glTF.
	ContentTypeGLB = "model/gltf-binary"
	// ContentTypeHDR is the media type of Radiance HDR images.
	ContentTypeHDR = "image/vnd.radiance"

	defaultLoadsLimit = 20
	maxLoadsLimit     = 100
)

// Handler handles HTTP requests for the rotor model.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = models.ModelLoad{}
	return &Handler{service: service}
}

// RegisterRoutes registers the rotor routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/rotor")
	group.Get("/parts", h.HandleParts)
	group.Get("/model.glb", h.HandleModel)
	group.Get("/environment.hdr", h.HandleEnvironment)
	group.Get("/loads", h.HandleLoads)
	group.Post("/refresh", h.HandleRefresh)
}

// HandleParts returns the configuration report of the rotor model.
// @Summary Get Rotor Parts
// @Description Configures the rotor model (or reuses the cached one) and reports normalization, found and missing parts and their materials.
// @Tags rotor
// @Produce json
// @Success 200 {object} scene.Report "Configuration Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rotor/parts [get]
func (h *Handler) HandleParts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Report(c.Context(), rayid.FromCtx(c))
	if err != nil {
		l.Error("Rotor configuration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleModel returns the configured rotor model as GLB.
// @Summary Get Configured Model
// @Description Returns the normalized rotor model with the part materials applied.
// @Tags rotor
// @Produce octet-stream
// @Success 200 {file} binary "GLB"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rotor/model.glb [get]
func (h *Handler) HandleModel(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	configured, err := h.service.Model(c.Context(), rayid.FromCtx(c))
	if err != nil {
		l.Error("Rotor configuration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, ContentTypeGLB)
	c.Set(fiber.HeaderLastModified, configured.Built.UTC().Format(http.TimeFormat))
	return c.Send(configured.GLB)
}

// HandleEnvironment proxies the environment HDR.
// @Summary Get Environment Map
// @Description Returns the equirectangular HDR used for image-based lighting, cached after the first download.
// @Tags rotor
// @Produce octet-stream
// @Success 200 {file} binary "HDR"
// @Failure 502 {object} map[string]string "Upstream Unavailable"
// @Router /rotor/environment.hdr [get]
func (h *Handler) HandleEnvironment(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.Environment(c.Context())
	if err != nil {
		l.Warn("Environment unavailable", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, ContentTypeHDR)
	return c.Send(data)
}

// HandleLoads returns the model load history.
// @Summary List Model Loads
// @Description Lists the most recent configurations of the rotor model, newest first.
// @Tags rotor
// @Produce json
// @Param limit query int false "Maximum number of entries (default 20, max 100)"
// @Success 200 {array} models.ModelLoad "Model Loads"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "History Disabled"
// @Router /rotor/loads [get]
func (h *Handler) HandleLoads(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := c.QueryInt("limit", defaultLoadsLimit)
	if limit <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be positive"})
	}
	if limit > maxLoadsLimit {
		limit = maxLoadsLimit
	}

	loads, err := h.service.Loads(c.Context(), limit)
	if errors.Is(err, ErrHistoryDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Listing model loads failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(loads)
}

// HandleRefresh drops the cached model and configures it again.
// @Summary Refresh Model
// @Description Reloads the rotor model from its source and returns the new configuration report.
// @Tags rotor
// @Produce json
// @Success 200 {object} scene.Report "Configuration Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rotor/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Refreshing rotor model")

	configured, err := h.service.Refresh(c.Context(), rayid.FromCtx(c))
	if err != nil {
		l.Error("Rotor configuration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(configured.Report)
}
