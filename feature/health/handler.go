package health

import (
	"fab-catalog/core/logger"
	"fab-catalog/feature/health/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleHealth)
	group.Get("/dataset", h.HandleDatasetCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleHealth reports card index and price cache state.
// @Summary Service Health
// @Description Card index statistics and price cache status. Answers 503 until the card index has loaded.
// @Tags health
// @Produce json
// @Success 200 {object} Report "Healthy"
// @Failure 503 {object} Report "Card data not loaded"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Health()
	if report.Status != StatusOK {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleDatasetCheck lists dataset documents missing from storage.
// @Summary Dataset Check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Missing documents"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /health/dataset [get]
func (h *Handler) HandleDatasetCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckDataset(c.UserContext())
	if err != nil {
		l.Error("Dataset check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	status := "ok"
	if len(missing) > 0 {
		status = "missing"
	}
	return c.JSON(fiber.Map{"status": status, "missing": missing})
}

// HandleSchemaCheck compares snapshot tables with their models.
// @Summary Schema Check
// @Tags health
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /health/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
