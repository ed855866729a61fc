// Package catalog holds the product list fetched from the storefront API.
//
// The Store is written by a single refresher and read by the cart (for price
// lookups) and the filter pipeline. Every refresh replaces the list as a
// whole under a write lock, so readers never observe a partially updated
// catalog. A failed refresh keeps the last good list and records the error.
//
// Readers receive copies; mutating a returned product never affects the
// stored catalog.
package catalog
