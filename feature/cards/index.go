package cards

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"fab-catalog/feature/cards/models"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNotLoaded is returned by every query before the first successful load.
// It is distinct from a not-found result, which is (nil, false, nil).
var ErrNotLoaded = errors.New("card index not loaded")

// snapshot is one fully built, immutable generation of the index.
type snapshot struct {
	cards      []*models.Card
	byID       map[string]*models.Card
	byName     map[string]*models.Card
	byPrinting map[string]*models.Card
	names      cardNames
	sets       []models.Set
	keywords   []models.Keyword
	printings  int
	loadedAt   time.Time

	// searches memoizes match positions per lowercased query.
	searches *lru.Cache
}

// Stats summarizes the loaded dataset for health reporting.
type Stats struct {
	Loaded      bool       `json:"loaded"`
	Loading     bool       `json:"loading"`
	Cards       int        `json:"cards"`
	Printings   int        `json:"printings"`
	Sets        int        `json:"sets"`
	Keywords    int        `json:"keywords"`
	LastUpdated *time.Time `json:"last_updated"`
	Source      string     `json:"source"`
}

// Index answers card lookups from an in-memory copy of the dataset.
//
// A load builds a complete snapshot off to the side and publishes it with a
// single atomic store, so readers never observe a half-built index: during a
// reload they keep reading the previous generation.
type Index struct {
	source    Source
	logger    *zap.Logger
	cacheSize int

	current atomic.Pointer[snapshot]
	loading atomic.Bool
	sf      singleflight.Group
}

// NewIndex creates an empty, unloaded index reading from source.
func NewIndex(source Source, logger *zap.Logger, searchCacheSize int) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	if searchCacheSize <= 0 {
		searchCacheSize = 512
	}
	return &Index{source: source, logger: logger, cacheSize: searchCacheSize}
}

// Load reads every dataset document and replaces all indexes.
// On failure the previously published snapshot (if any) stays in place.
// Concurrent calls share one in-flight load.
func (i *Index) Load(ctx context.Context) error {
	_, err, _ := i.sf.Do("load", func() (interface{}, error) {
		i.loading.Store(true)
		defer i.loading.Store(false)

		start := time.Now()
		snap, err := i.build(ctx)
		if err != nil {
			return nil, err
		}
		i.current.Store(snap)

		i.logger.Info("Card index loaded",
			zap.String("source", i.source.Describe()),
			zap.Int("cards", len(snap.cards)),
			zap.Int("printings", snap.printings),
			zap.Int("sets", len(snap.sets)),
			zap.Int("keywords", len(snap.keywords)),
			zap.Duration("took", time.Since(start)))
		return nil, nil
	})
	return err
}

// Reload is Load under another name; it is what the scheduled job calls.
func (i *Index) Reload(ctx context.Context) error {
	return i.Load(ctx)
}

// StartReloadJob reloads the dataset every interval until ctx is done.
// A failed reload is logged and the current snapshot keeps serving.
func (i *Index) StartReloadJob(ctx context.Context, interval time.Duration) {
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
				if err := i.Reload(ctx); err != nil {
					i.logger.Error("Card index reload failed", zap.Error(err))
				}
			}
		}
	}()
}

func (i *Index) build(ctx context.Context) (*snapshot, error) {
	var cards []*models.Card
	if err := i.decode(ctx, CardsDocument, &cards); err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%s contains no cards", CardsDocument)
	}

	var rawSets []models.RawSet
	if err := i.decode(ctx, SetsDocument, &rawSets); err != nil {
		return nil, err
	}

	var keywords []models.Keyword
	if err := i.decode(ctx, KeywordsDocument, &keywords); err != nil {
		return nil, err
	}

	searches, err := lru.New(i.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}

	snap := &snapshot{
		cards:      cards,
		byID:       make(map[string]*models.Card, len(cards)),
		byName:     make(map[string]*models.Card, len(cards)),
		byPrinting: make(map[string]*models.Card, len(cards)*3),
		names:      make(cardNames, len(cards)),
		sets:       make([]models.Set, 0, len(rawSets)),
		keywords:   keywords,
		loadedAt:   time.Now().UTC(),
		searches:   searches,
	}

	for pos, card := range cards {
		if card == nil {
			return nil, fmt.Errorf("%s: entry %d is null", CardsDocument, pos)
		}
		if msg := card.Validate(); msg != "" {
			return nil, fmt.Errorf("%s: entry %d: %s", CardsDocument, pos, msg)
		}
		if _, dup := snap.byID[card.UniqueID]; dup {
			return nil, fmt.Errorf("%s: entry %d: duplicate unique_id %q", CardsDocument, pos, card.UniqueID)
		}
		snap.byID[card.UniqueID] = card
		// Names are assumed unique; on collision the later card wins.
		snap.byName[nameKey(card.Name)] = card
		snap.names[pos] = strings.ToLower(card.Name)
		for _, p := range card.Printings {
			if p.ID == "" {
				continue
			}
			snap.byPrinting[printingKey(p.ID)] = card
			snap.printings++
		}
	}

	for _, rs := range rawSets {
		snap.sets = append(snap.sets, rs.ToSet())
	}

	return snap, nil
}

func (i *Index) decode(ctx context.Context, name string, v any) error {
	r, err := i.source.Open(ctx, name)
	if err != nil {
		return err
	}
	defer r.Close()

	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	// The document must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("failed to parse %s: trailing data after top-level value", name)
	}
	return nil
}

func (i *Index) published() (*snapshot, error) {
	snap := i.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// IsLoaded reports whether a snapshot has been published.
func (i *Index) IsLoaded() bool {
	return i.current.Load() != nil
}

// GetByPrintingID resolves a printing identifier such as "WTR001" to its card.
// Matching is case-insensitive.
func (i *Index) GetByPrintingID(id string) (*models.Card, bool, error) {
	snap, err := i.published()
	if err != nil {
		return nil, false, err
	}
	card, ok := snap.byPrinting[printingKey(id)]
	return card, ok, nil
}

// GetByUniqueID resolves a card unique id.
func (i *Index) GetByUniqueID(id string) (*models.Card, bool, error) {
	snap, err := i.published()
	if err != nil {
		return nil, false, err
	}
	card, ok := snap.byID[strings.TrimSpace(id)]
	return card, ok, nil
}

// GetByName resolves a card by name, ignoring case and surrounding space.
func (i *Index) GetByName(name string) (*models.Card, bool, error) {
	snap, err := i.published()
	if err != nil {
		return nil, false, err
	}
	card, ok := snap.byName[nameKey(name)]
	return card, ok, nil
}

// Lookup tries the identifier as a printing id, then a unique id, then a name.
func (i *Index) Lookup(identifier string) (*models.Card, bool, error) {
	for _, get := range []func(string) (*models.Card, bool, error){i.GetByPrintingID, i.GetByUniqueID, i.GetByName} {
		card, ok, err := get(identifier)
		if err != nil || ok {
			return card, ok, err
		}
	}
	return nil, false, nil
}

// Sets returns a copy of the loaded set list.
func (i *Index) Sets() ([]models.Set, error) {
	snap, err := i.published()
	if err != nil {
		return nil, err
	}
	out := make([]models.Set, len(snap.sets))
	copy(out, snap.sets)
	return out, nil
}

// Keywords returns a copy of the loaded keyword list.
func (i *Index) Keywords() ([]models.Keyword, error) {
	snap, err := i.published()
	if err != nil {
		return nil, err
	}
	out := make([]models.Keyword, len(snap.keywords))
	copy(out, snap.keywords)
	return out, nil
}

// Stats reports counts and the last load time. It never fails.
func (i *Index) Stats() Stats {
	st := Stats{
		Loading: i.loading.Load(),
		Source:  i.source.Describe(),
	}
	snap := i.current.Load()
	if snap == nil {
		return st
	}
	loadedAt := snap.loadedAt
	st.Loaded = true
	st.Cards = len(snap.cards)
	st.Printings = snap.printings
	st.Sets = len(snap.sets)
	st.Keywords = len(snap.keywords)
	st.LastUpdated = &loadedAt
	return st
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func printingKey(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
