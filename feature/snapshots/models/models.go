package models

import "time"

// Follow marks a printing whose price is captured on every snapshot run.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PrintingID string    `gorm:"column:printing_id;size:32;uniqueIndex;not null" json:"printing_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

// PriceSnapshot is the price of one followed printing at one point in time.
type PriceSnapshot struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PrintingID string    `gorm:"column:printing_id;size:32;index;not null" json:"printing_id"`
	CardID     string    `gorm:"column:card_id;size:64" json:"card_id"`
	ProductID  int       `gorm:"column:product_id;index" json:"product_id"`
	USD        *float64  `gorm:"column:usd" json:"usd"`
	USDFoil    *float64  `gorm:"column:usd_foil" json:"usdFoil"`
	CapturedAt time.Time `gorm:"column:captured_at;index;not null" json:"captured_at"`
}

func (PriceSnapshot) TableName() string {
	return "price_snapshots"
}

// CaptureResult summarizes one snapshot run.
type CaptureResult struct {
	Follows    int       `json:"follows"`
	Captured   int       `json:"captured"`
	Skipped    []string  `json:"skipped,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
}

// PrunePlan lists follows whose printing the card index no longer knows.
type PrunePlan struct {
	Follows int      `json:"follows"`
	Stale   []string `json:"stale"`
	Removed int      `json:"removed"`
	DryRun  bool     `json:"dry_run"`
}
