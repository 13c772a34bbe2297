package prices

import (
	"strings"
	"time"
)

// Price is the known market price for one product. A nil field means unknown.
type Price struct {
	USD     *float64 `json:"usd"`
	USDFoil *float64 `json:"usdFoil"`
}

// Unknown is the sentinel returned for products with no cached price.
func Unknown() Price {
	return Price{}
}

// IsUnknown reports whether neither price is known.
func (p Price) IsUnknown() bool {
	return p.USD == nil && p.USDFoil == nil
}

// Group is one upstream grouping, usually a set.
type Group struct {
	GroupID      int    `json:"groupId"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	PublishedOn  string `json:"publishedOn"`
	CategoryID   int    `json:"categoryId"`
}

// PriceRow is one product variant row from a group's price listing.
type PriceRow struct {
	ProductID      int      `json:"productId"`
	LowPrice       *float64 `json:"lowPrice"`
	MidPrice       *float64 `json:"midPrice"`
	HighPrice      *float64 `json:"highPrice"`
	MarketPrice    *float64 `json:"marketPrice"`
	DirectLowPrice *float64 `json:"directLowPrice"`
	SubTypeName    string   `json:"subTypeName"`
}

// Value is the market price, falling back to the mid price.
func (r PriceRow) Value() *float64 {
	if r.MarketPrice != nil {
		return r.MarketPrice
	}
	return r.MidPrice
}

// IsFoil classifies a variant label. Any label containing "foil" is foil.
func IsFoil(subTypeName string) bool {
	return strings.Contains(strings.ToLower(subTypeName), "foil")
}

// RefreshStatus is the outcome of a refresh attempt.
type RefreshStatus string

const (
	// StatusFresh means the cache was within its TTL and nothing was fetched.
	StatusFresh RefreshStatus = "fresh"
	// StatusOK means every group was fetched and the map was replaced.
	StatusOK RefreshStatus = "ok"
	// StatusPartial means some groups failed; their products kept previous prices.
	StatusPartial RefreshStatus = "partial"
	// StatusFailed means nothing changed, including the fetch stamp.
	StatusFailed RefreshStatus = "failed"
)

// RefreshResult describes one EnsureLoaded or Refresh call.
type RefreshResult struct {
	Status       RefreshStatus `json:"status"`
	Groups       int           `json:"groups"`
	FailedGroups []int         `json:"failed_groups,omitempty"`
	Products     int           `json:"products"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Error        string        `json:"error,omitempty"`

	Err error `json:"-"`
}

// Status is a point-in-time view of the cache for health surfaces.
type Status struct {
	Products   int            `json:"products"`
	LastFetch  *time.Time     `json:"last_fetch"`
	Stale      bool           `json:"stale"`
	Refreshing bool           `json:"refreshing"`
	TTL        string         `json:"ttl"`
	LastResult *RefreshResult `json:"last_result,omitempty"`
}
