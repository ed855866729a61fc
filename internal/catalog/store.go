package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/storefront/internal/shop"
)

// Snapshot represents the latest catalog available to consumers.
type Snapshot struct {
	Products            []shop.Product
	Loaded              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the catalog has failed to refresh repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the product list. The list is only ever replaced as a whole.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	index    map[string]int
}

// Update replaces the product list. When err is non-nil the previous list is
// kept but the error is recorded for visibility.
func (s *Store) Update(products []shop.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Products = cloneProducts(products)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0

	s.index = make(map[string]int, len(s.snapshot.Products))
	for i, p := range s.snapshot.Products {
		if _, dup := s.index[p.ID]; !dup {
			s.index[p.ID] = i
		}
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Products = cloneProducts(s.snapshot.Products)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Products returns a copy of the current product list.
func (s *Store) Products() []shop.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.snapshot.Products)
}

// Lookup finds a product by identifier.
func (s *Store) Lookup(id string) (shop.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return shop.Product{}, false
	}
	return cloneProduct(s.snapshot.Products[i]), true
}

// Len reports the number of products currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot.Products)
}

func cloneProducts(items []shop.Product) []shop.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]shop.Product, len(items))
	for i, p := range items {
		dup[i] = cloneProduct(p)
	}
	return dup
}

func cloneProduct(p shop.Product) shop.Product {
	p.Sizes = cloneStrings(p.Sizes)
	p.Colors = cloneStrings(p.Colors)
	p.Images = cloneStrings(p.Images)
	return p
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
