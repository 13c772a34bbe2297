// Package models defines the gorm models persisted by the snapshots feature.
package models
