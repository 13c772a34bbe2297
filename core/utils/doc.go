// Package utils provides common utility functions for the fab-catalog application.
// It includes helper functions for type conversion, such as coercing external
// product identifiers into integers, and other shared logic that doesn't fit
// into domain-specific packages.
package utils
