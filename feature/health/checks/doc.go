// Package checks implements the individual health checks: dataset documents in
// object storage and snapshot tables against their gorm models.
package checks
