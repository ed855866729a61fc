// Package cart implements the client-side shopping cart.
//
// # Model
//
// The cart is a flat map from Key{ItemID, Size, Color} to a quantity. A leaf
// is present only while its quantity is at least 1: setting a quantity to zero
// deletes the key, so there are never empty item or size branches to prune.
// Nested renders the backend's three-level shape on demand.
//
// # Mutations
//
// AddToCart increments a leaf and requires a size and a color; UpdateQuantity
// overwrites an existing leaf (zero removes it) and ignores leaves that do not
// exist. Both apply synchronously under a lock and then hand a Mutation to
// every subscribed Listener, in the order the mutations were applied. Remote
// synchronisation lives in package cartsync and subscribes as a listener; the
// cart never waits on the network and never rolls back.
//
// Replace swaps the whole cart, which is how a fetched server cart is
// installed. It does not notify listeners.
//
// # Aggregates
//
// Count and Amount walk the map on every call. Amount prices each item through
// the Catalog and uses decimal arithmetic; items that are missing from the
// catalog or carry an unusable price are skipped with a warning.
package cart
