// Package catalog serves cards merged with market prices over HTTP.
//
// Each printing of a card gets the price cached for its pricing-source product
// id, and the card-level headline price is taken from the first printing. Price
// outages never fail a request: the worst case is a response with null prices.
// Requests made before the card index has loaded answer 503.
//
// Routes:
//
//	GET  /cards?q=&page=&per_page=
//	GET  /cards/:identifier
//	GET  /sets
//	GET  /keywords
//	GET  /prices/status
//	POST /prices/refresh
//	GET  /prices/:productId
package catalog
