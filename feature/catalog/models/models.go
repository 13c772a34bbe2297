package models

import (
	cards "fab-catalog/feature/cards/models"
	"fab-catalog/feature/prices"
)

// PrintingView is a printing with its current price attached.
type PrintingView struct {
	cards.Printing
	Price prices.Price `json:"price"`
}

// CardView is a card merged with prices for every printing.
// Price is the headline price, taken from the first printing.
type CardView struct {
	*cards.Card
	Printings []PrintingView `json:"printings"`
	Price     prices.Price   `json:"price"`
}

// SearchResponse is one page of card views.
type SearchResponse struct {
	Data        []CardView `json:"data"`
	CurrentPage int        `json:"currentPage"`
	LastPage    int        `json:"lastPage"`
	PerPage     int        `json:"perPage"`
	Total       int        `json:"total"`

	// Suggestions are fuzzy name matches offered when nothing matched.
	Suggestions []string `json:"suggestions,omitempty"`
}

// ProductPrice is the response for a single product price lookup.
type ProductPrice struct {
	ProductID string       `json:"product_id"`
	Known     bool         `json:"known"`
	Price     prices.Price `json:"price"`
}
