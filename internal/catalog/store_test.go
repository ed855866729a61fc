package catalog

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/storefront/internal/shop"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	products := []shop.Product{
		{ID: "p1", Name: "Linen Shirt", Price: 2500, Sizes: []string{"M"}},
		{ID: "p2", Name: "Wide Pants", Price: 3200},
	}

	before := time.Now()
	s.Update(products, nil)

	snap := s.Snapshot()
	if !snap.Loaded || len(snap.Products) != 2 || snap.Products[0].ID != "p1" {
		t.Fatalf("snapshot = %#v, want 2 loaded products", snap)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned data should be independent of the stored list.
	snap.Products[0].Name = "mutated"
	snap.Products[0].Sizes[0] = "XXL"
	products[0].Name = "caller mutated"
	again := s.Snapshot()
	if again.Products[0].Name != "Linen Shirt" || again.Products[0].Sizes[0] != "M" {
		t.Fatalf("Snapshot should clone products; got %#v", again.Products[0])
	}
}

func TestStore_UpdateErrorKeepsPreviousCatalog(t *testing.T) {
	var s Store
	s.Update([]shop.Product{{ID: "p1"}}, nil)

	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if len(snap.Products) != 1 || snap.Products[0].ID != "p1" {
		t.Fatalf("products changed on error: %#v", snap.Products)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if _, ok := s.Lookup("p1"); !ok {
		t.Fatalf("Lookup should still find p1 after a failed refresh")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store
	s.Update(nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after one failure: %+v", snap)
	}
	s.Update(nil, errors.New("fail 2"))
	if snap := s.Snapshot(); !snap.IsOffline() {
		t.Fatalf("IsOffline() = false, want true after 2 failures")
	}
	s.Update([]shop.Product{}, nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() || !snap.Loaded {
		t.Fatalf("success should reset failures: %+v", snap)
	}
}

func TestStore_LookupAndWholesaleReplace(t *testing.T) {
	var s Store
	if _, ok := s.Lookup("p1"); ok {
		t.Fatalf("Lookup on empty store should miss")
	}

	s.Update([]shop.Product{{ID: "p1", Price: 10}, {ID: "p2", Price: 20}}, nil)
	p, ok := s.Lookup("p2")
	if !ok || p.Price != 20 {
		t.Fatalf("Lookup(p2) = %#v, %v", p, ok)
	}

	s.Update([]shop.Product{{ID: "p3", Price: 30}}, nil)
	if _, ok := s.Lookup("p1"); ok {
		t.Fatalf("p1 should be gone after replacement")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}
