package snapshots

import (
	"context"
	"errors"
	"fmt"

	"fab-catalog/feature/snapshots/models"

	"gorm.io/gorm"
)

// Tables lists every model the repository persists.
var Tables = []any{&models.Follow{}, &models.PriceSnapshot{}}

// Repository persists follows and price snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the snapshot tables.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(Tables...); err != nil {
		return fmt.Errorf("failed to migrate snapshot tables: %w", err)
	}
	return nil
}

// ListFollows returns every follow, oldest first.
func (r *Repository) ListFollows(ctx context.Context) ([]models.Follow, error) {
	var follows []models.Follow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&follows).Error; err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}
	return follows, nil
}

// AddFollow follows printingID. created is false when it was already followed.
func (r *Repository) AddFollow(ctx context.Context, printingID string) (*models.Follow, bool, error) {
	db := r.db.WithContext(ctx)

	var follow models.Follow
	err := db.Where("printing_id = ?", printingID).First(&follow).Error
	if err == nil {
		return &follow, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up follow %s: %w", printingID, err)
	}

	follow = models.Follow{PrintingID: printingID}
	if err := db.Create(&follow).Error; err != nil {
		return nil, false, fmt.Errorf("failed to follow %s: %w", printingID, err)
	}
	return &follow, true, nil
}

// RemoveFollow unfollows printingID. It reports whether a follow existed.
func (r *Repository) RemoveFollow(ctx context.Context, printingID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("printing_id = ?", printingID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to unfollow %s: %w", printingID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RemoveFollows deletes the follows of every printing id in one statement.
func (r *Repository) RemoveFollows(ctx context.Context, printingIDs []string) (int, error) {
	if len(printingIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("printing_id IN ?", printingIDs).Delete(&models.Follow{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to remove %d follows: %w", len(printingIDs), res.Error)
	}
	return int(res.RowsAffected), nil
}

// SaveSnapshots inserts rows in batches of batchSize.
func (r *Repository) SaveSnapshots(ctx context.Context, rows []models.PriceSnapshot, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	if batchSize < 1 {
		batchSize = 100
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("failed to save %d snapshots: %w", len(rows), err)
	}
	return nil
}

// History returns up to limit snapshots of printingID, newest first.
func (r *Repository) History(ctx context.Context, printingID string, limit int) ([]models.PriceSnapshot, error) {
	var rows []models.PriceSnapshot
	err := r.db.WithContext(ctx).
		Where("printing_id = ?", printingID).
		Order("captured_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", printingID, err)
	}
	return rows, nil
}
