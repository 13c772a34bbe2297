package cmd

import (
	"fmt"
	"os"

	"fab-catalog/core/config"
	"fab-catalog/core/logger"
	"fab-catalog/core/storage"
	"fab-catalog/feature/cards"
	"fab-catalog/feature/prices"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// runtime holds the components shared by the server and the one-shot commands.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	store  storage.Client
	index  *cards.Index
	prices *prices.Cache
}

// newRuntime loads configuration and wires the card index and price cache.
// console switches the logger to console output for interactive commands.
func newRuntime(console bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Log
	if console {
		logCfg.Format = "console"
	}
	logg, err := logger.New(&logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	source, err := cards.NewSource(cfg.Cards, store, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:    cfg,
		logger: logg,
		store:  store,
		index:  cards.NewIndex(source, logg, cfg.Cards.SearchCacheSize),
		prices: prices.NewCache(prices.NewTCGCSVClient(cfg.Prices), cfg.Prices, logg),
	}, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
