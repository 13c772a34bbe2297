// Package snapshots records price history for followed printings.
//
// A follow names a printing id (e.g. "WTR001"). On every capture the printing
// is resolved through the card index, its product price is read from the price
// cache and one PriceSnapshot row is written. Rows are inserted in batches with
// gorm. The feature requires a database and is disabled without one.
package snapshots
