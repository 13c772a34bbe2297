package catalog

import (
	"context"

	"fab-catalog/feature/cards"
	cardmodels "fab-catalog/feature/cards/models"
	"fab-catalog/feature/catalog/models"
	"fab-catalog/feature/prices"

	"go.uber.org/zap"
)

// suggestionLimit bounds "did you mean" names on empty searches.
const suggestionLimit = 5

// CardIndex is the read side of the card index the catalog needs.
type CardIndex interface {
	Search(query string, page, perPage int) (*cards.SearchResult, error)
	Suggest(query string, limit int) ([]string, error)
	Lookup(identifier string) (*cardmodels.Card, bool, error)
	Sets() ([]cardmodels.Set, error)
	Keywords() ([]cardmodels.Keyword, error)
}

// PriceSource is the price cache as seen by the catalog.
type PriceSource interface {
	EnsureLoaded(ctx context.Context) prices.RefreshResult
	Refresh(ctx context.Context) prices.RefreshResult
	GetPrice(productID any) prices.Price
	Status() prices.Status
}

// Service merges cards with prices.
type Service struct {
	index  CardIndex
	prices PriceSource
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(index CardIndex, priceSource PriceSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{index: index, prices: priceSource, logger: logger}
}

// CardView fills each printing's price and the card's headline price.
// A card without printings has an unknown headline price.
func (s *Service) CardView(card *cardmodels.Card) models.CardView {
	view := models.CardView{
		Card:      card,
		Printings: make([]models.PrintingView, 0, len(card.Printings)),
		Price:     prices.Unknown(),
	}
	for _, p := range card.Printings {
		view.Printings = append(view.Printings, models.PrintingView{
			Printing: p,
			Price:    s.prices.GetPrice(p.TCGPlayerProductID),
		})
	}
	if len(view.Printings) > 0 {
		view.Price = view.Printings[0].Price
	}
	return view
}

// Search returns a page of card views. Prices are brought up to date first;
// a failing price refresh only leaves prices unknown.
func (s *Service) Search(ctx context.Context, query string, page, perPage int) (*models.SearchResponse, error) {
	result, err := s.index.Search(query, page, perPage)
	if err != nil {
		return nil, err
	}

	s.prices.EnsureLoaded(ctx)

	resp := &models.SearchResponse{
		Data:        make([]models.CardView, 0, len(result.Data)),
		CurrentPage: result.CurrentPage,
		LastPage:    result.LastPage,
		PerPage:     result.PerPage,
		Total:       result.Total,
	}
	for _, card := range result.Data {
		resp.Data = append(resp.Data, s.CardView(card))
	}

	if result.Total == 0 && query != "" {
		suggestions, err := s.index.Suggest(query, suggestionLimit)
		if err != nil {
			s.logger.Warn("Failed to compute suggestions", zap.String("query", query), zap.Error(err))
		}
		resp.Suggestions = suggestions
	}
	return resp, nil
}

// GetCard resolves identifier as a printing id, unique id or name.
func (s *Service) GetCard(ctx context.Context, identifier string) (*models.CardView, bool, error) {
	card, ok, err := s.index.Lookup(identifier)
	if err != nil || !ok {
		return nil, ok, err
	}

	s.prices.EnsureLoaded(ctx)
	view := s.CardView(card)
	return &view, true, nil
}

func (s *Service) Sets() ([]cardmodels.Set, error) {
	return s.index.Sets()
}

func (s *Service) Keywords() ([]cardmodels.Keyword, error) {
	return s.index.Keywords()
}

// Price looks up one product. It never fails; unknown products report Known=false.
func (s *Service) Price(ctx context.Context, productID string) models.ProductPrice {
	s.prices.EnsureLoaded(ctx)
	p := s.prices.GetPrice(productID)
	return models.ProductPrice{ProductID: productID, Known: !p.IsUnknown(), Price: p}
}

func (s *Service) PriceStatus() prices.Status {
	return s.prices.Status()
}

// RefreshPrices forces a price refresh and waits for it.
func (s *Service) RefreshPrices(ctx context.Context) prices.RefreshResult {
	return s.prices.Refresh(ctx)
}
