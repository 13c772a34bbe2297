package snapshots

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	repo    *Repository
	cfg     Config
	enabled bool
}

// NewFeature creates a new Snapshots feature. It is disabled without a database.
func NewFeature(db *gorm.DB, index PrintingResolver, priceReader PriceReader, cfg Config, logger *zap.Logger) *Feature {
	repo := NewRepository(db)
	svc := NewService(repo, index, priceReader, cfg, logger)
	return &Feature{
		service: svc,
		handler: NewHandler(svc),
		repo:    repo,
		cfg:     cfg,
		enabled: db != nil && cfg.Enabled,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "snapshots"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load migrates the tables when configured and registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.cfg.AutoMigrate {
		if err := f.repo.Migrate(); err != nil {
			return err
		}
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Start runs the capture job until ctx is done. It does nothing when disabled.
func (f *Feature) Start(ctx context.Context) {
	if !f.enabled {
		return
	}
	f.service.StartCaptureJob(ctx, f.cfg.Interval)
}
