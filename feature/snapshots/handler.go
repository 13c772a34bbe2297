package snapshots

import (
	"errors"

	"fab-catalog/core/logger"
	"fab-catalog/feature/cards"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for follows and price history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the snapshot routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	follows := app.Group("/follows")
	follows.Get("/", h.HandleListFollows)
	follows.Post("/prune", h.HandlePrune)
	follows.Post("/:printing", h.HandleFollow)
	follows.Delete("/:printing", h.HandleUnfollow)

	app.Get("/history/:printing", h.HandleHistory)
	app.Post("/snapshots/capture", h.HandleCapture)
}

// HandleListFollows lists followed printings.
// @Summary List Follows
// @Tags snapshots
// @Produce json
// @Success 200 {array} models.Follow "Follows"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /follows [get]
func (h *Handler) HandleListFollows(c *fiber.Ctx) error {
	follows, err := h.service.Follows(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(follows)
}

// HandleFollow follows a printing.
// @Summary Follow Printing
// @Description Start capturing prices for a printing id. Following twice is a no-op.
// @Tags snapshots
// @Produce json
// @Param printing path string true "Printing id (e.g. WTR001)"
// @Success 200 {object} models.Follow "Already followed"
// @Success 201 {object} models.Follow "Followed"
// @Failure 404 {object} map[string]string "Unknown printing"
// @Failure 503 {object} map[string]string "Card index not loaded"
// @Router /follows/{printing} [post]
func (h *Handler) HandleFollow(c *fiber.Ctx) error {
	follow, created, err := h.service.Follow(c.UserContext(), c.Params("printing"))
	if err != nil {
		return h.fail(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(follow)
	}
	return c.JSON(follow)
}

// HandlePrune removes follows of printings missing from the dataset.
// @Summary Prune Follows
// @Description Plans removal of follows whose printing no longer exists. Pass confirm=true to delete.
// @Tags snapshots
// @Produce json
// @Param dry_run query bool false "Only report stale follows"
// @Param confirm query bool false "Confirm deletion"
// @Success 200 {object} models.PrunePlan "Prune Plan"
// @Failure 503 {object} map[string]string "Card index not loaded"
// @Router /follows/prune [post]
func (h *Handler) HandlePrune(c *fiber.Ctx) error {
	opts := PruneOptions{
		DryRun:    c.QueryBool("dry_run", false),
		Confirmed: c.QueryBool("confirm", false),
	}
	plan, err := h.service.Prune(c.UserContext(), opts)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(plan)
}

// HandleUnfollow unfollows a printing.
// @Summary Unfollow Printing
// @Tags snapshots
// @Param printing path string true "Printing id"
// @Success 204 "Unfollowed"
// @Failure 404 {object} map[string]string "Not followed"
// @Router /follows/{printing} [delete]
func (h *Handler) HandleUnfollow(c *fiber.Ctx) error {
	removed, err := h.service.Unfollow(c.UserContext(), c.Params("printing"))
	if err != nil {
		return h.fail(c, err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "printing not followed"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleHistory returns captured prices of a printing.
// @Summary Price History
// @Tags snapshots
// @Produce json
// @Param printing path string true "Printing id"
// @Param limit query int false "Maximum rows, newest first"
// @Success 200 {array} models.PriceSnapshot "History"
// @Router /history/{printing} [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	rows, err := h.service.History(c.UserContext(), c.Params("printing"), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(rows)
}

// HandleCapture runs a snapshot capture immediately.
// @Summary Capture Snapshots
// @Tags snapshots
// @Produce json
// @Success 200 {object} models.CaptureResult "Capture Result"
// @Failure 503 {object} map[string]string "Card index not loaded"
// @Router /snapshots/capture [post]
func (h *Handler) HandleCapture(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Snapshot capture requested")

	res, err := h.service.Capture(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUnknownPrinting):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, cards.ErrNotLoaded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Snapshot request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
