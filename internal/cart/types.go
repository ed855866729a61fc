package cart

import (
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/shop"
)

// Key identifies a cart leaf.
type Key struct {
	ItemID string
	Size   string
	Color  string
}

// Line is a single cart leaf with its quantity.
type Line struct {
	Key
	Quantity int
}

// Op names the kind of local mutation.
type Op int

const (
	// OpAdd increments a leaf by Quantity.
	OpAdd Op = iota
	// OpUpdate sets a leaf to Quantity; zero removes it.
	OpUpdate
)

func (o Op) String() string {
	if o == OpUpdate {
		return "update"
	}
	return "add"
}

// Mutation describes a local change that has already been applied. Quantity
// is the caller's value: a delta for OpAdd, the absolute value for OpUpdate.
type Mutation struct {
	Op       Op
	Key      Key
	Quantity int
	Version  uint64
}

// Request converts the mutation into the remote payload.
func (m Mutation) Request() shop.CartRequest {
	return shop.CartRequest{
		ItemID:   m.Key.ItemID,
		Size:     m.Key.Size,
		Color:    m.Key.Color,
		Quantity: m.Quantity,
	}
}

// Listener observes applied mutations.
type Listener func(Mutation)

// Catalog is the price source the cart reads from.
type Catalog interface {
	Lookup(id string) (shop.Product, bool)
	Len() int
}

// Summary aggregates the cart for checkout display.
type Summary struct {
	Count       int
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// ValidationError rejects a mutation before anything is changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "required"
	}
	return e.Field + " " + reason
}
