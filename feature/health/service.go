package health

import (
	"context"
	"fmt"

	"fab-catalog/core/storage"
	"fab-catalog/feature/cards"
	"fab-catalog/feature/health/checks"
	"fab-catalog/feature/prices"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// IndexStats reports card index statistics.
type IndexStats interface {
	Stats() cards.Stats
}

// PriceStatus reports price cache status.
type PriceStatus interface {
	Status() prices.Status
}

// Report is the overall service health.
type Report struct {
	Status string        `json:"status"`
	Cards  cards.Stats   `json:"cards"`
	Prices prices.Status `json:"prices"`
}

// DatasetConfig locates the dataset in object storage. Client is nil when the
// dataset is read from disk.
type DatasetConfig struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// Service runs health checks.
type Service struct {
	index   IndexStats
	prices  PriceStatus
	dataset DatasetConfig
	db      *gorm.DB
	models  []any
	logger  *zap.Logger
}

// NewService creates a new health service. models are checked by CheckSchema.
func NewService(index IndexStats, priceStatus PriceStatus, dataset DatasetConfig, db *gorm.DB, models []any, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		index:   index,
		prices:  priceStatus,
		dataset: dataset,
		db:      db,
		models:  models,
		logger:  logger,
	}
}

// Health reports degraded until the card index has loaded. Stale prices do not
// degrade the service.
func (s *Service) Health() Report {
	r := Report{
		Status: StatusOK,
		Cards:  s.index.Stats(),
		Prices: s.prices.Status(),
	}
	if !r.Cards.Loaded {
		r.Status = StatusDegraded
	}
	return r
}

// CheckDataset returns the dataset documents missing from storage.
func (s *Service) CheckDataset(ctx context.Context) ([]string, error) {
	if s.dataset.Client == nil {
		return nil, fmt.Errorf("dataset is not read from object storage")
	}
	return checks.CheckDataset(ctx, s.dataset.Client, s.dataset.Bucket, s.dataset.Prefix, cards.Documents)
}

// CheckSchema compares the snapshot tables with their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.models...)
}
