// Package models defines the response shapes of the catalog API.
package models
