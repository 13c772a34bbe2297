package catalog

import (
	"errors"

	"fab-catalog/core/logger"
	"fab-catalog/feature/cards"
	"fab-catalog/feature/prices"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for cards and prices.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/cards", h.HandleSearchCards)
	app.Get("/cards/:identifier", h.HandleGetCard)
	app.Get("/sets", h.HandleListSets)
	app.Get("/keywords", h.HandleListKeywords)

	group := app.Group("/prices")
	group.Get("/status", h.HandlePriceStatus)
	group.Post("/refresh", h.HandleRefreshPrices)
	group.Get("/:productId", h.HandleGetPrice)
}

// HandleSearchCards searches cards by name.
// @Summary Search Cards
// @Description Case-insensitive substring search over card names, in dataset order, with prices merged in.
// @Tags cards
// @Produce json
// @Param q query string false "Name fragment"
// @Param page query int false "Page number (1-based)"
// @Param per_page query int false "Results per page (max 100)"
// @Success 200 {object} models.SearchResponse "Search Results"
// @Failure 503 {object} map[string]string "Card index not loaded"
// @Router /cards [get]
func (h *Handler) HandleSearchCards(c *fiber.Ctx) error {
	query := c.Query("q")
	resp, err := h.service.Search(c.UserContext(), query, c.QueryInt("page", 1), c.QueryInt("per_page", cards.DefaultPerPage))
	if err != nil {
		return h.indexError(c, err)
	}
	return c.JSON(resp)
}

// HandleGetCard returns one card with prices.
// @Summary Get Card
// @Description Resolve a printing id (e.g. WTR001), card unique id or card name.
// @Tags cards
// @Produce json
// @Param identifier path string true "Printing id, unique id or name"
// @Success 200 {object} models.CardView "Card"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 503 {object} map[string]string "Card index not loaded"
// @Router /cards/{identifier} [get]
func (h *Handler) HandleGetCard(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	view, ok, err := h.service.GetCard(c.UserContext(), identifier)
	if err != nil {
		return h.indexError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "card not found"})
	}
	return c.JSON(view)
}

// HandleListSets lists every set.
// @Summary List Sets
// @Tags cards
// @Produce json
// @Success 200 {array} object "Sets"
// @Failure 503 {object} map[string]string "Card index not loaded"
// @Router /sets [get]
func (h *Handler) HandleListSets(c *fiber.Ctx) error {
	sets, err := h.service.Sets()
	if err != nil {
		return h.indexError(c, err)
	}
	return c.JSON(sets)
}

// HandleListKeywords lists every keyword.
// @Summary List Keywords
// @Tags cards
// @Produce json
// @Success 200 {array} object "Keywords"
// @Failure 503 {object} map[string]string "Card index not loaded"
// @Router /keywords [get]
func (h *Handler) HandleListKeywords(c *fiber.Ctx) error {
	keywords, err := h.service.Keywords()
	if err != nil {
		return h.indexError(c, err)
	}
	return c.JSON(keywords)
}

// HandleGetPrice returns the cached price of one product.
// @Summary Get Product Price
// @Description Unknown products answer 200 with null prices.
// @Tags prices
// @Produce json
// @Param productId path string true "Pricing source product id"
// @Success 200 {object} models.ProductPrice "Price"
// @Router /prices/{productId} [get]
func (h *Handler) HandleGetPrice(c *fiber.Ctx) error {
	return c.JSON(h.service.Price(c.UserContext(), c.Params("productId")))
}

// HandlePriceStatus reports price cache freshness.
// @Summary Price Cache Status
// @Tags prices
// @Produce json
// @Success 200 {object} prices.Status "Status"
// @Router /prices/status [get]
func (h *Handler) HandlePriceStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.PriceStatus())
}

// HandleRefreshPrices forces a price refresh.
// @Summary Refresh Prices
// @Description Forces a refresh from the pricing mirror and waits for it. Failed refreshes keep previous prices.
// @Tags prices
// @Produce json
// @Success 200 {object} prices.RefreshResult "Refreshed"
// @Failure 502 {object} prices.RefreshResult "Upstream failed"
// @Router /prices/refresh [post]
func (h *Handler) HandleRefreshPrices(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Price refresh requested")

	res := h.service.RefreshPrices(c.UserContext())
	if res.Status == prices.StatusFailed {
		return c.Status(fiber.StatusBadGateway).JSON(res)
	}
	return c.JSON(res)
}

func (h *Handler) indexError(c *fiber.Ctx, err error) error {
	if errors.Is(err, cards.ErrNotLoaded) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Catalog request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
