// Package health reports whether the service can answer card and price requests.
//
// # Checks Provided
//
//   - Health: card index statistics and price cache status. The service is
//     degraded (503) until the card index has loaded; stale prices are not a failure.
//   - Dataset: verifies cards.json, sets.json and keywords.json exist in the storage
//     bucket when the dataset is read from object storage.
//   - Schema: validates the snapshot tables against their gorm models.
//
// # HTTP Endpoints
//
//   - GET /health : Overall health.
//   - GET /health/dataset : Dataset document check.
//   - GET /health/schema : Snapshot schema check.
package health
