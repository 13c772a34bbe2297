// Package models defines the card dataset types shared by the card index and the
// catalog views: Card, Printing, Set and Keyword.
package models
