package prices

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fab-catalog/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrNoGroups is reported when the upstream lists no groups at all.
var ErrNoGroups = errors.New("upstream returned no groups")

// Cache is a TTL-gated product id -> price table.
//
// Reads never touch the network. EnsureLoaded and Refresh share at most one
// in-flight refresh between all concurrent callers, and a failed refresh never
// discards prices that are already cached.
type Cache struct {
	upstream     Upstream
	logger       *zap.Logger
	ttl          time.Duration
	batchSize    int
	batchTimeout time.Duration
	now          func() time.Time

	mu         sync.RWMutex
	prices     map[int]Price
	lastFetch  time.Time
	lastResult *RefreshResult

	refreshing atomic.Bool
	sf         singleflight.Group
}

// NewCache creates an empty cache. Nothing is fetched until EnsureLoaded.
func NewCache(upstream Upstream, cfg Config, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 5
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{
		upstream:     upstream,
		logger:       logger,
		ttl:          ttl,
		batchSize:    batchSize,
		batchTimeout: cfg.BatchTimeout,
		now:          time.Now,
		prices:       make(map[int]Price),
	}
}

// EnsureLoaded returns immediately when the cache is fresh. Otherwise it starts
// a refresh, or joins the one already running, and waits for it.
// Failures are reported in the result, never as a panic or error return.
func (c *Cache) EnsureLoaded(ctx context.Context) RefreshResult {
	if c.isFresh() {
		return c.freshResult()
	}

	v, _, _ := c.sf.Do("refresh", func() (interface{}, error) {
		// Another caller may have finished a refresh while we queued.
		if c.isFresh() {
			return c.freshResult(), nil
		}
		return c.refresh(context.WithoutCancel(ctx)), nil
	})
	return v.(RefreshResult)
}

// Refresh forces the cache stale and then behaves like EnsureLoaded.
func (c *Cache) Refresh(ctx context.Context) RefreshResult {
	c.mu.Lock()
	c.lastFetch = time.Time{}
	c.mu.Unlock()
	return c.EnsureLoaded(ctx)
}

// GetPrice returns the cached price for productID, or Unknown. productID may be
// any integer, an integral float, or a numeric string.
func (c *Cache) GetPrice(productID any) Price {
	id, ok := utils.ParseID(productID)
	if !ok {
		return Unknown()
	}
	c.mu.RLock()
	p := c.prices[id]
	c.mu.RUnlock()
	return Price{USD: clone(p.USD), USDFoil: clone(p.USDFoil)}
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Status reports counts and freshness.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Status{
		Products:   len(c.prices),
		Stale:      c.staleLocked(),
		Refreshing: c.refreshing.Load(),
		TTL:        c.ttl.String(),
	}
	if !c.lastFetch.IsZero() {
		last := c.lastFetch
		st.LastFetch = &last
	}
	if c.lastResult != nil {
		res := *c.lastResult
		st.LastResult = &res
	}
	return st
}

// StartRefreshJob forces a refresh every interval until ctx is done.
func (c *Cache) StartRefreshJob(ctx context.Context, interval time.Duration) {
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
				c.Refresh(ctx)
			}
		}
	}()
}

func (c *Cache) isFresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.staleLocked()
}

func (c *Cache) staleLocked() bool {
	return c.lastFetch.IsZero() || c.now().Sub(c.lastFetch) > c.ttl
}

func (c *Cache) freshResult() RefreshResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return RefreshResult{Status: StatusFresh, Products: len(c.prices)}
}

func (c *Cache) refresh(ctx context.Context) RefreshResult {
	c.refreshing.Store(true)
	defer c.refreshing.Store(false)

	res := RefreshResult{StartedAt: c.now()}

	groups, err := c.upstream.Groups(ctx)
	if err == nil && len(groups) == 0 {
		err = ErrNoGroups
	}
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("failed to list groups: %w", err)
		return c.finish(res, nil)
	}
	res.Groups = len(groups)

	fresh := make(map[int]Price)
	var firstErr error
	for start := 0; start < len(groups); start += c.batchSize {
		end := start + c.batchSize
		if end > len(groups) {
			end = len(groups)
		}
		failed, err := c.fetchBatch(ctx, groups[start:end], fresh)
		res.FailedGroups = append(res.FailedGroups, failed...)
		if firstErr == nil {
			firstErr = err
		}
	}

	switch {
	case len(res.FailedGroups) == len(groups):
		res.Status = StatusFailed
		res.Err = fmt.Errorf("all %d groups failed: %w", len(groups), firstErr)
		return c.finish(res, nil)
	case len(res.FailedGroups) > 0:
		res.Status = StatusPartial
		res.Err = firstErr
	default:
		res.Status = StatusOK
	}
	return c.finish(res, fresh)
}

// fetchBatch fetches one batch of groups concurrently and merges their rows
// into dst in group order. A failing group is skipped and its id returned.
func (c *Cache) fetchBatch(ctx context.Context, batch []Group, dst map[int]Price) ([]int, error) {
	if c.batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.batchTimeout)
		defer cancel()
	}

	rows := make([][]PriceRow, len(batch))
	errs := make([]error, len(batch))

	// Tasks record their own errors so a failing group never stops its siblings.
	var g errgroup.Group
	g.SetLimit(c.batchSize)
	for i, group := range batch {
		g.Go(func() error {
			r, err := c.upstream.Prices(ctx, group.GroupID)
			if err != nil {
				errs[i] = err
				return nil
			}
			rows[i] = r
			return nil
		})
	}
	_ = g.Wait()

	var failed []int
	var firstErr error
	for i, group := range batch {
		if errs[i] != nil {
			c.logger.Warn("Price group fetch failed",
				zap.Int("group_id", group.GroupID),
				zap.String("group", group.Name),
				zap.Error(errs[i]))
			failed = append(failed, group.GroupID)
			if firstErr == nil {
				firstErr = fmt.Errorf("group %d: %w", group.GroupID, errs[i])
			}
			continue
		}
		for _, row := range rows[i] {
			applyRow(dst, row)
		}
	}
	return failed, firstErr
}

// applyRow merges one row. A row without a value never clears a known price.
func applyRow(dst map[int]Price, row PriceRow) {
	v := row.Value()
	if v == nil || row.ProductID <= 0 {
		return
	}
	val := *v

	p := dst[row.ProductID]
	if IsFoil(row.SubTypeName) {
		p.USDFoil = &val
	} else {
		p.USD = &val
	}
	dst[row.ProductID] = p
}

// finish publishes fresh (nil on failure), records res and logs the outcome.
func (c *Cache) finish(res RefreshResult, fresh map[int]Price) RefreshResult {
	res.Duration = c.now().Sub(res.StartedAt)
	if res.Err != nil {
		res.Error = res.Err.Error()
	}

	c.mu.Lock()
	switch res.Status {
	case StatusOK:
		c.prices = fresh
		c.lastFetch = c.now()
	case StatusPartial:
		merged := make(map[int]Price, len(c.prices)+len(fresh))
		for id, p := range c.prices {
			merged[id] = p
		}
		for id, p := range fresh {
			merged[id] = p
		}
		c.prices = merged
		c.lastFetch = c.now()
	}
	res.Products = len(c.prices)
	recorded := res
	c.lastResult = &recorded
	c.mu.Unlock()

	fields := []zap.Field{
		zap.String("status", string(res.Status)),
		zap.Int("groups", res.Groups),
		zap.Int("failed_groups", len(res.FailedGroups)),
		zap.Int("products", res.Products),
		zap.Duration("took", res.Duration),
	}
	switch res.Status {
	case StatusOK:
		c.logger.Info("Price cache refreshed", fields...)
	case StatusPartial:
		c.logger.Warn("Price cache partially refreshed", append(fields, zap.Error(res.Err))...)
	default:
		c.logger.Error("Price cache refresh failed, keeping previous prices", append(fields, zap.Error(res.Err))...)
	}
	return res
}
