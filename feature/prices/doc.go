// Package prices keeps market prices for pricing-source product ids.
//
// Cache is filled from a TCGCSV mirror: the category's groups are listed, then
// each group's price rows are fetched in fixed-size concurrent batches. Rows are
// classified foil or non-foil from their variant label and keyed by product id.
//
// Reads through GetPrice are synchronous map lookups. Freshness is driven by
// EnsureLoaded (lazy, TTL based) and Refresh (forced), both of which collapse
// concurrent callers onto one in-flight refresh. Upstream failures are reported
// in a RefreshResult and never clear prices that are already cached.
//
// Usage:
//
//	cache := prices.NewCache(prices.NewTCGCSVClient(cfg), cfg, logger)
//	cache.EnsureLoaded(ctx)
//	p := cache.GetPrice(card.Printings[0].TCGPlayerProductID)
package prices
