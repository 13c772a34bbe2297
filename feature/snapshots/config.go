package snapshots

import "time"

// Config holds configuration for price snapshots.
type Config struct {
	// Enabled turns the feature on when a database is available.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Interval is how often followed printings are captured. Zero disables the job.
	Interval time.Duration `mapstructure:"interval" default:"6h"`
	// AutoMigrate creates or updates the snapshot tables at startup.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
	// BatchSize is the number of rows per insert statement.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// HistoryLimit is the default number of rows returned by history queries.
	HistoryLimit int `mapstructure:"history_limit" default:"30"`
}
