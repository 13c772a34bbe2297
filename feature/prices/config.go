package prices

import "time"

// Config holds configuration for the price cache and its upstream mirror.
type Config struct {
	// BaseURL is the TCGCSV mirror root, without the category segment.
	BaseURL string `mapstructure:"base_url" default:"https://tcgcsv.com/tcgplayer"`
	// CategoryID is the upstream category (62 is Flesh and Blood).
	CategoryID int `mapstructure:"category_id" default:"62"`
	// TTL is how long fetched prices count as fresh.
	TTL time.Duration `mapstructure:"ttl" default:"24h"`
	// BatchSize is the number of groups fetched concurrently.
	BatchSize int `mapstructure:"batch_size" default:"5"`
	// BatchTimeout bounds one batch of group fetches.
	BatchTimeout time.Duration `mapstructure:"batch_timeout" default:"30s"`
	// RequestsPerSecond caps upstream request rate. Zero or less disables limiting.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"10"`
	// RequestTimeout bounds a single upstream HTTP request.
	RequestTimeout time.Duration `mapstructure:"request_timeout" default:"15s"`
	// RefreshInterval schedules forced refreshes. Zero disables the job.
	RefreshInterval time.Duration `mapstructure:"refresh_interval" default:"24h"`
	// UserAgent is sent with every upstream request.
	UserAgent string `mapstructure:"user_agent" default:"fab-catalog"`
}
