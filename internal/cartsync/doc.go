// Package cartsync keeps the remote cart in step with the local one.
//
// The Client subscribes to cart mutations and mirrors each one to the backend
// on its own goroutine, returning a Task the caller may wait on. Nothing is
// sent while no session token is set. A failed call is logged and reported
// through the notifier; the local cart is never rolled back, so the two copies
// are only eventually consistent.
//
// SetToken starts or ends a session. Starting one fetches the user's cart and
// installs it with cart.Store.ReplaceIf, guarded by the session generation: a
// response that arrives after the token has changed again is discarded.
// Acknowledgements of two in-flight mutations may arrive in either order.
package cartsync
