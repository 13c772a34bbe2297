package snapshots

import (
	"context"
	"errors"
	"strings"
	"time"

	"fab-catalog/core/utils"
	cardmodels "fab-catalog/feature/cards/models"
	"fab-catalog/feature/prices"
	"fab-catalog/feature/snapshots/models"

	"go.uber.org/zap"
)

// ErrUnknownPrinting is returned when following a printing the card index does not know.
var ErrUnknownPrinting = errors.New("unknown printing")

// PrintingResolver resolves printing ids to cards.
type PrintingResolver interface {
	GetByPrintingID(id string) (*cardmodels.Card, bool, error)
}

// PriceReader is the part of the price cache snapshots read from.
type PriceReader interface {
	EnsureLoaded(ctx context.Context) prices.RefreshResult
	GetPrice(productID any) prices.Price
}

// Service captures and serves price history for followed printings.
type Service struct {
	repo   *Repository
	index  PrintingResolver
	prices PriceReader
	logger *zap.Logger
	cfg    Config
	now    func() time.Time
}

// NewService creates a new snapshot service.
func NewService(repo *Repository, index PrintingResolver, priceReader PriceReader, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HistoryLimit < 1 {
		cfg.HistoryLimit = 30
	}
	return &Service{repo: repo, index: index, prices: priceReader, logger: logger, cfg: cfg, now: time.Now}
}

// Follow starts capturing printingID. The printing must exist in the card index.
func (s *Service) Follow(ctx context.Context, printingID string) (*models.Follow, bool, error) {
	id := normalize(printingID)
	if _, ok, err := s.index.GetByPrintingID(id); err != nil {
		return nil, false, err
	} else if !ok {
		return nil, false, ErrUnknownPrinting
	}
	return s.repo.AddFollow(ctx, id)
}

// Unfollow stops capturing printingID. History is kept.
func (s *Service) Unfollow(ctx context.Context, printingID string) (bool, error) {
	return s.repo.RemoveFollow(ctx, normalize(printingID))
}

func (s *Service) Follows(ctx context.Context) ([]models.Follow, error) {
	return s.repo.ListFollows(ctx)
}

// History returns the newest snapshots of printingID. limit < 1 uses the configured default.
func (s *Service) History(ctx context.Context, printingID string, limit int) ([]models.PriceSnapshot, error) {
	if limit < 1 {
		limit = s.cfg.HistoryLimit
	}
	return s.repo.History(ctx, normalize(printingID), limit)
}

// Capture writes one snapshot row per followed printing. Printings that no longer
// resolve, or whose product id is missing, are skipped and reported.
func (s *Service) Capture(ctx context.Context) (*models.CaptureResult, error) {
	follows, err := s.repo.ListFollows(ctx)
	if err != nil {
		return nil, err
	}

	s.prices.EnsureLoaded(ctx)

	result := &models.CaptureResult{Follows: len(follows), CapturedAt: s.now().UTC()}
	rows := make([]models.PriceSnapshot, 0, len(follows))
	for _, f := range follows {
		card, ok, err := s.index.GetByPrintingID(f.PrintingID)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Skipped = append(result.Skipped, f.PrintingID)
			continue
		}

		printing, found := findPrinting(card, f.PrintingID)
		productID, valid := utils.ParseID(printing.TCGPlayerProductID)
		if !found || !valid {
			result.Skipped = append(result.Skipped, f.PrintingID)
			continue
		}

		price := s.prices.GetPrice(productID)
		rows = append(rows, models.PriceSnapshot{
			PrintingID: f.PrintingID,
			CardID:     card.UniqueID,
			ProductID:  productID,
			USD:        price.USD,
			USDFoil:    price.USDFoil,
			CapturedAt: result.CapturedAt,
		})
	}

	if err := s.repo.SaveSnapshots(ctx, rows, s.cfg.BatchSize); err != nil {
		return nil, err
	}
	result.Captured = len(rows)

	s.logger.Info("Price snapshots captured",
		zap.Int("follows", result.Follows),
		zap.Int("captured", result.Captured),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// PruneOptions controls Prune. Nothing is deleted unless Confirmed is set and
// DryRun is not.
type PruneOptions struct {
	DryRun    bool
	Confirmed bool
}

// Prune plans, and optionally removes, follows whose printing disappeared from
// the dataset. Snapshot history of pruned printings is kept.
func (s *Service) Prune(ctx context.Context, opts PruneOptions) (*models.PrunePlan, error) {
	follows, err := s.repo.ListFollows(ctx)
	if err != nil {
		return nil, err
	}

	plan := &models.PrunePlan{
		Follows: len(follows),
		Stale:   []string{},
		DryRun:  opts.DryRun || !opts.Confirmed,
	}
	for _, f := range follows {
		_, ok, err := s.index.GetByPrintingID(f.PrintingID)
		if err != nil {
			return nil, err
		}
		if !ok {
			plan.Stale = append(plan.Stale, f.PrintingID)
		}
	}

	if plan.DryRun || len(plan.Stale) == 0 {
		return plan, nil
	}

	removed, err := s.repo.RemoveFollows(ctx, plan.Stale)
	if err != nil {
		return nil, err
	}
	plan.Removed = removed

	s.logger.Info("Stale follows pruned",
		zap.Int("follows", plan.Follows),
		zap.Int("removed", plan.Removed))
	return plan, nil
}

// StartCaptureJob captures every interval until ctx is done.
func (s *Service) StartCaptureJob(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Capture(ctx); err != nil {
					s.logger.Error("Price snapshot capture failed", zap.Error(err))
				}
			}
		}
	}()
}

func findPrinting(card *cardmodels.Card, id string) (cardmodels.Printing, bool) {
	for _, p := range card.Printings {
		if strings.EqualFold(p.ID, id) {
			return p, true
		}
	}
	return cardmodels.Printing{}, false
}

func normalize(printingID string) string {
	return strings.ToUpper(strings.TrimSpace(printingID))
}
