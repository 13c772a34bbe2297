// Package config provides configuration management for fab-catalog.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded with godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, public paths)
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: optional MySQL or SQLite connection for price snapshots
//   - Cards: dataset source and reload interval
//   - Prices: pricing mirror, TTL, batch size and rate limit
//   - Snapshots: capture interval and history defaults
//
// Every key maps to an upper-case environment variable, with dots replaced by
// underscores (prices.ttl -> PRICES_TTL). Defaults come from the `default` struct tags.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Prices.TTL)
package config
