package cards

import "time"

const (
	SourceFile    = "file"
	SourceStorage = "storage"
)

// Config holds configuration for the card index.
type Config struct {
	// Source selects where dataset documents are read from (file, storage).
	Source string `mapstructure:"source" default:"file"`
	// DataDir is the local directory holding the dataset when Source is file.
	DataDir string `mapstructure:"data_dir" default:"./data"`
	// Prefix is the object key prefix when Source is storage.
	Prefix string `mapstructure:"prefix" default:"dataset"`
	// ReloadInterval is how often the dataset is re-read. Zero disables reloads.
	ReloadInterval time.Duration `mapstructure:"reload_interval" default:"24h"`
	// SearchCacheSize bounds the memoized search queries per loaded dataset.
	SearchCacheSize int `mapstructure:"search_cache_size" default:"512"`
}
