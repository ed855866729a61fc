package cart

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/notify"
)

// Options configures a Store.
type Options struct {
	Catalog  Catalog
	Notifier notify.Notifier
	Logger   *slog.Logger
}

// Store owns the cart. It is the only writer of the cart map.
type Store struct {
	// dispatch serialises mutate+notify so listeners see mutations in the
	// order they were applied.
	dispatch sync.Mutex

	mu        sync.RWMutex
	items     map[Key]int
	version   uint64
	listeners []Listener

	catalog  Catalog
	notifier notify.Notifier
	logger   *slog.Logger
}

// New creates an empty cart.
func New(opts Options) *Store {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		items:    make(map[Key]int),
		catalog:  opts.Catalog,
		notifier: notifier,
		logger:   logger,
	}
}

// Subscribe registers a listener for applied add/update mutations. Listeners
// run on the mutating goroutine and must not mutate the cart.
func (s *Store) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// AddToCart increments the leaf at (itemID, size, color) by quantity. Size and
// color are mandatory; on a validation failure the user is notified and the
// cart is left untouched.
func (s *Store) AddToCart(itemID, size, color string, quantity int) error {
	if err := s.validate(itemID, size, color); err != nil {
		return err
	}
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	key := Key{ItemID: itemID, Size: size, Color: color}

	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	s.items[key] += quantity
	s.version++
	m := Mutation{Op: OpAdd, Key: key, Quantity: quantity, Version: s.version}
	listeners := s.listeners
	s.mu.Unlock()

	s.emit(listeners, m)
	return nil
}

// UpdateQuantity sets the leaf at (itemID, size, color) to quantity. Unknown
// leaves are ignored. A zero quantity removes the leaf.
func (s *Store) UpdateQuantity(itemID, size, color string, quantity int) error {
	if quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	key := Key{ItemID: itemID, Size: size, Color: color}

	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	if _, ok := s.items[key]; !ok {
		s.mu.Unlock()
		s.logger.Debug("update for unknown cart line ignored",
			"item_id", itemID, "size", size, "color", color)
		return nil
	}
	if quantity == 0 {
		delete(s.items, key)
	} else {
		s.items[key] = quantity
	}
	s.version++
	m := Mutation{Op: OpUpdate, Key: key, Quantity: quantity, Version: s.version}
	listeners := s.listeners
	s.mu.Unlock()

	s.emit(listeners, m)
	return nil
}

// Replace swaps the whole cart for lines, typically the server's copy after a
// session is established. Leaves with a non-positive quantity are dropped.
// Listeners are not notified.
func (s *Store) Replace(lines map[Key]int) {
	s.ReplaceIf(lines, nil)
}

// ReplaceIf is Replace gated by guard. The guard runs after every earlier
// mutation has been applied and before any later one, so a caller can check
// that the data is still wanted (for example that the session which fetched
// it is still active). It reports whether the cart was replaced.
func (s *Store) ReplaceIf(lines map[Key]int, guard func() bool) bool {
	next := make(map[Key]int, len(lines))
	for k, q := range lines {
		if q < 1 {
			s.logger.Warn("dropping cart line with non-positive quantity",
				"item_id", k.ItemID, "size", k.Size, "color", k.Color, "quantity", q)
			continue
		}
		next[k] = q
	}

	s.dispatch.Lock()
	defer s.dispatch.Unlock()
	if guard != nil && !guard() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = next
	s.version++
	return true
}

// Clear empties the cart, e.g. on logout.
func (s *Store) Clear() {
	s.Replace(nil)
}

// Count returns the total number of units in the cart.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for k, q := range s.items {
		if q <= 0 {
			s.logger.Warn("skipping cart line with non-positive quantity",
				"item_id", k.ItemID, "size", k.Size, "color", k.Color, "quantity", q)
			continue
		}
		total += q
	}
	return total
}

// Amount returns the sum of price × quantity over every leaf. Items missing
// from the catalog, or whose price is not a finite non-negative number, add
// nothing.
func (s *Store) Amount() decimal.Decimal {
	total := decimal.Zero
	if s.catalog == nil || s.catalog.Len() == 0 {
		s.logger.Warn("catalog is empty; cart amount is zero")
		return total
	}

	perItem := make(map[string]int)
	s.mu.RLock()
	for k, q := range s.items {
		if q <= 0 {
			s.logger.Warn("skipping cart line with non-positive quantity",
				"item_id", k.ItemID, "size", k.Size, "color", k.Color, "quantity", q)
			continue
		}
		perItem[k.ItemID] += q
	}
	s.mu.RUnlock()

	for itemID, units := range perItem {
		product, ok := s.catalog.Lookup(itemID)
		if !ok {
			s.logger.Warn("cart item not found in catalog", "item_id", itemID)
			continue
		}
		if !product.HasValidPrice() {
			s.logger.Warn("cart item has invalid price", "item_id", itemID, "price", product.Price)
			continue
		}
		price := decimal.NewFromFloat(product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(units))))
	}
	return total
}

// Summary combines Count and Amount with a delivery fee. The fee only applies
// to a non-empty subtotal.
func (s *Store) Summary(deliveryFee decimal.Decimal) Summary {
	sum := Summary{
		Count:       s.Count(),
		Subtotal:    s.Amount(),
		DeliveryFee: deliveryFee,
	}
	if sum.Subtotal.IsZero() {
		sum.Total = decimal.Zero
	} else {
		sum.Total = sum.Subtotal.Add(deliveryFee)
	}
	return sum
}

// Quantity returns the quantity stored for key, or zero.
func (s *Store) Quantity(key Key) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[key]
}

// Lines returns every leaf ordered by item, size and color.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	lines := make([]Line, 0, len(s.items))
	for k, q := range s.items {
		lines = append(lines, Line{Key: k, Quantity: q})
	}
	s.mu.RUnlock()

	slices.SortFunc(lines, func(a, b Line) int {
		return cmp.Or(
			cmp.Compare(a.ItemID, b.ItemID),
			cmp.Compare(a.Size, b.Size),
			cmp.Compare(a.Color, b.Color),
		)
	})
	return lines
}

// Nested renders the cart in the backend's itemId -> size -> color shape.
// Only populated branches appear.
func (s *Store) Nested() map[string]map[string]map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string]map[string]int)
	for k, q := range s.items {
		sizes, ok := out[k.ItemID]
		if !ok {
			sizes = make(map[string]map[string]int)
			out[k.ItemID] = sizes
		}
		colors, ok := sizes[k.Size]
		if !ok {
			colors = make(map[string]int)
			sizes[k.Size] = colors
		}
		colors[k.Color] = q
	}
	return out
}

// Len reports the number of leaves.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Version increases on every change to the cart.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// validate rejects empty size and color the way the product page does; any
// non-empty label, blanks included, is taken as chosen. An empty item id can
// only come from a programming error, so it is refused without a notice.
func (s *Store) validate(itemID, size, color string) error {
	if itemID == "" {
		return &ValidationError{Field: "item"}
	}
	if size == "" {
		s.notifier.Notify(notify.Error, "Select Product Size")
		return &ValidationError{Field: "size"}
	}
	if color == "" {
		s.notifier.Notify(notify.Error, "Select Product Color")
		return &ValidationError{Field: "color"}
	}
	return nil
}

func (s *Store) emit(listeners []Listener, m Mutation) {
	for _, l := range listeners {
		l(m)
	}
}
