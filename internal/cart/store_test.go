package cart

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/shop"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, products ...shop.Product) (*Store, *notify.Recorder) {
	t.Helper()
	cat := &catalog.Store{}
	if products != nil {
		cat.Update(products, nil)
	}
	rec := &notify.Recorder{}
	return New(Options{Catalog: cat, Notifier: rec, Logger: quietLogger()}), rec
}

func TestAddToCart_CountEqualsSumOfAdds(t *testing.T) {
	s, _ := newTestStore(t)

	adds := []struct {
		id, size, color string
		qty             int
	}{
		{"p1", "M", "Blue", 1},
		{"p1", "M", "Blue", 2},
		{"p1", "L", "Blue", 1},
		{"p2", "S", "Red", 4},
		{"p1", "M", "Black", 5},
	}
	want := 0
	for _, a := range adds {
		if err := s.AddToCart(a.id, a.size, a.color, a.qty); err != nil {
			t.Fatalf("AddToCart(%v) returned error: %v", a, err)
		}
		want += a.qty
	}

	if got := s.Count(); got != want {
		t.Fatalf("Count = %d, want %d", got, want)
	}
	if got := s.Quantity(Key{"p1", "M", "Blue"}); got != 3 {
		t.Fatalf("Quantity(p1/M/Blue) = %d, want 3 (increment)", got)
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4 leaves", s.Len())
	}
}

func TestAddToCart_ValidationLeavesCartUnchanged(t *testing.T) {
	s, rec := newTestStore(t)
	if err := s.AddToCart("p1", "M", "Blue", 1); err != nil {
		t.Fatalf("AddToCart returned error: %v", err)
	}
	before := s.Nested()
	version := s.Version()

	tests := []struct {
		name      string
		size      string
		color     string
		qty       int
		wantField string
		wantMsg   string
	}{
		{"empty size", "", "Blue", 1, "size", "Select Product Size"},
		{"empty color", "M", "", 1, "color", "Select Product Color"},
		{"zero quantity", "M", "Blue", 0, "quantity", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddToCart("p1", tt.size, tt.color, tt.qty)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.wantField {
				t.Fatalf("AddToCart error = %v, want ValidationError on %s", err, tt.wantField)
			}
			if tt.wantMsg != "" {
				msgs := rec.Messages()
				last := msgs[len(msgs)-1]
				if last.Severity != notify.Error || last.Text != tt.wantMsg {
					t.Fatalf("last notification = %+v, want error %q", last, tt.wantMsg)
				}
			}
		})
	}

	if !reflect.DeepEqual(s.Nested(), before) {
		t.Fatalf("cart changed after rejected adds: %v, want %v", s.Nested(), before)
	}
	if s.Version() != version {
		t.Fatalf("Version moved from %d to %d on rejected adds", version, s.Version())
	}
}

func TestAddToCart_OnlyEmptyLabelsAreRejected(t *testing.T) {
	s, rec := newTestStore(t)

	if err := s.AddToCart("p1", " ", "Blue", 1); err != nil {
		t.Fatalf("AddToCart with blank size returned error: %v", err)
	}
	if got := s.Quantity(Key{"p1", " ", "Blue"}); got != 1 {
		t.Fatalf("Quantity(p1/ /Blue) = %d, want 1", got)
	}

	err := s.AddToCart("", "M", "Blue", 1)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "item" {
		t.Fatalf("AddToCart with empty item error = %v, want ValidationError on item", err)
	}
	if msgs := rec.Messages(); len(msgs) != 0 {
		t.Fatalf("notifications = %+v, want none", msgs)
	}
}

func TestValidationError_Messages(t *testing.T) {
	if got := (&ValidationError{Field: "size"}).Error(); got != "size required" {
		t.Fatalf("Error = %q, want size required", got)
	}
	if got := (&ValidationError{Field: "color"}).Error(); got != "color required" {
		t.Fatalf("Error = %q, want color required", got)
	}
}

func TestUpdateQuantity_ZeroRemovesLeafAndEmptyBranches(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.AddToCart("p1", "M", "Blue", 2)
	_ = s.AddToCart("p1", "M", "Black", 1)
	_ = s.AddToCart("p2", "L", "Red", 1)

	if err := s.UpdateQuantity("p1", "M", "Blue", 0); err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	nested := s.Nested()
	if _, ok := nested["p1"]["M"]["Blue"]; ok {
		t.Fatalf("p1/M/Blue should be gone: %v", nested)
	}
	if nested["p1"]["M"]["Black"] != 1 {
		t.Fatalf("sibling leaf lost: %v", nested)
	}

	_ = s.UpdateQuantity("p1", "M", "Black", 0)
	nested = s.Nested()
	if _, ok := nested["p1"]; ok {
		t.Fatalf("item p1 should be absent once its last leaf is removed: %v", nested)
	}

	_ = s.UpdateQuantity("p2", "L", "Red", 0)
	if nested := s.Nested(); len(nested) != 0 {
		t.Fatalf("cart should be empty, got %v", nested)
	}
	if s.Count() != 0 {
		t.Fatalf("Count = %d, want 0", s.Count())
	}
}

func TestUpdateQuantity_SetsAbsoluteAndIgnoresUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	var seen []Mutation
	s.Subscribe(func(m Mutation) { seen = append(seen, m) })

	_ = s.AddToCart("p1", "M", "Blue", 2)
	if err := s.UpdateQuantity("p1", "M", "Blue", 5); err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if got := s.Quantity(Key{"p1", "M", "Blue"}); got != 5 {
		t.Fatalf("Quantity = %d, want 5 (absolute set)", got)
	}

	version := s.Version()
	if err := s.UpdateQuantity("p9", "M", "Blue", 3); err != nil {
		t.Fatalf("UpdateQuantity on unknown leaf returned error: %v", err)
	}
	if err := s.UpdateQuantity("p1", "S", "Blue", 3); err != nil {
		t.Fatalf("UpdateQuantity on unknown size returned error: %v", err)
	}
	if s.Version() != version || s.Len() != 1 {
		t.Fatalf("unknown updates should be no-ops")
	}
	if len(seen) != 2 {
		t.Fatalf("listener saw %d mutations, want 2 (no-ops are silent)", len(seen))
	}

	var verr *ValidationError
	if err := s.UpdateQuantity("p1", "M", "Blue", -1); !errors.As(err, &verr) {
		t.Fatalf("negative quantity error = %v, want ValidationError", err)
	}
}

func TestSubscribe_ReceivesMutationsInOrder(t *testing.T) {
	s, _ := newTestStore(t)
	var seen []Mutation
	s.Subscribe(func(m Mutation) { seen = append(seen, m) })
	s.Subscribe(nil)

	_ = s.AddToCart("p1", "M", "Blue", 2)
	_ = s.UpdateQuantity("p1", "M", "Blue", 0)
	_ = s.AddToCart("p1", "", "Blue", 2) // rejected

	if len(seen) != 2 {
		t.Fatalf("seen = %+v, want 2 mutations", seen)
	}
	if seen[0].Op != OpAdd || seen[0].Quantity != 2 || seen[1].Op != OpUpdate || seen[1].Quantity != 0 {
		t.Fatalf("seen = %+v, want add then update", seen)
	}
	if seen[0].Version >= seen[1].Version {
		t.Fatalf("versions not increasing: %d, %d", seen[0].Version, seen[1].Version)
	}
	req := seen[1].Request()
	if req.ItemID != "p1" || req.Size != "M" || req.Color != "Blue" || req.Quantity != 0 {
		t.Fatalf("Request = %+v, want p1/M/Blue qty 0", req)
	}
}

func TestAddToCart_ConcurrentAddsAreAtomic(t *testing.T) {
	s, _ := newTestStore(t)
	var mu sync.Mutex
	var versions []uint64
	s.Subscribe(func(m Mutation) {
		mu.Lock()
		versions = append(versions, m.Version)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddToCart("p1", "M", "Blue", 1)
		}()
	}
	wg.Wait()

	if s.Count() != 50 {
		t.Fatalf("Count = %d, want 50", s.Count())
	}
	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Fatalf("listener order broken at %d: %v", i, versions)
		}
	}
}

func TestAmount_PricesKnownItemsAndSkipsOthers(t *testing.T) {
	s, _ := newTestStore(t,
		shop.Product{ID: "p1", Price: 2500},
		shop.Product{ID: "p2", Price: 19.99},
		shop.Product{ID: "bad", Price: math.NaN()},
		shop.Product{ID: "neg", Price: -5},
	)
	_ = s.AddToCart("p1", "M", "Blue", 2)
	_ = s.AddToCart("p1", "L", "Blue", 1)
	_ = s.AddToCart("p2", "S", "Red", 3)
	_ = s.AddToCart("ghost", "S", "Red", 7)
	_ = s.AddToCart("bad", "S", "Red", 1)
	_ = s.AddToCart("neg", "S", "Red", 1)

	want := decimal.RequireFromString("7559.97") // 2500*3 + 19.99*3
	if got := s.Amount(); !got.Equal(want) {
		t.Fatalf("Amount = %s, want %s", got, want)
	}
	if s.Count() != 15 {
		t.Fatalf("Count = %d, want 15 (count ignores the catalog)", s.Count())
	}
}

func TestAmount_EmptyCatalogIsZero(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.AddToCart("p1", "M", "Blue", 2)
	if got := s.Amount(); !got.IsZero() {
		t.Fatalf("Amount = %s, want 0 with empty catalog", got)
	}

	nilCatalog := New(Options{Logger: quietLogger()})
	_ = nilCatalog.AddToCart("p1", "M", "Blue", 1)
	if got := nilCatalog.Amount(); !got.IsZero() {
		t.Fatalf("Amount = %s, want 0 without catalog", got)
	}
}

func TestSummary_DeliveryFeeOnlyWhenNonEmpty(t *testing.T) {
	s, _ := newTestStore(t, shop.Product{ID: "p1", Price: 1000})
	fee := decimal.NewFromInt(350)

	empty := s.Summary(fee)
	if !empty.Total.IsZero() || empty.Count != 0 {
		t.Fatalf("empty summary = %+v, want zero total", empty)
	}

	_ = s.AddToCart("p1", "M", "Blue", 2)
	sum := s.Summary(fee)
	if sum.Count != 2 || !sum.Subtotal.Equal(decimal.NewFromInt(2000)) || !sum.Total.Equal(decimal.NewFromInt(2350)) {
		t.Fatalf("summary = %+v, want count 2 subtotal 2000 total 2350", sum)
	}
}

func TestReplace_InstallsCartAndDropsInvalidLeaves(t *testing.T) {
	s, _ := newTestStore(t)
	var seen int
	s.Subscribe(func(Mutation) { seen++ })
	_ = s.AddToCart("old", "M", "Blue", 1)

	s.Replace(map[Key]int{
		{"p1", "M", "Blue"}: 2,
		{"p2", "L", "Red"}:  0,
		{"p3", "S", "Pink"}: -4,
	})
	if s.Len() != 1 || s.Quantity(Key{"p1", "M", "Blue"}) != 2 {
		t.Fatalf("Lines = %+v, want only p1/M/Blue=2", s.Lines())
	}
	if seen != 1 {
		t.Fatalf("Replace should not notify listeners, saw %d", seen)
	}

	s.Clear()
	if s.Len() != 0 || s.Count() != 0 {
		t.Fatalf("Clear left %+v", s.Lines())
	}
}

func TestLines_SortedByItemSizeColor(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.AddToCart("p2", "M", "Red", 1)
	_ = s.AddToCart("p1", "M", "Red", 1)
	_ = s.AddToCart("p1", "L", "Red", 1)
	_ = s.AddToCart("p1", "L", "Black", 1)

	got := s.Lines()
	want := []Key{{"p1", "L", "Black"}, {"p1", "L", "Red"}, {"p1", "M", "Red"}, {"p2", "M", "Red"}}
	for i, k := range want {
		if got[i].Key != k {
			t.Fatalf("Lines[%d] = %+v, want %+v", i, got[i].Key, k)
		}
	}
}

func TestFromCartData_SkipsInvalidLeaves(t *testing.T) {
	var data shop.CartData
	raw := `{
		"p1": {"M": {"Blue": 2, "Black": 0}, "L": {}},
		"p2": {"S": {"Red": "three", "Pink": 1.5, "Green": -1}},
		"p3": {"XL": {"Beige": 4}}
	}`
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	got := FromCartData(data, quietLogger())
	want := map[Key]int{
		{"p1", "M", "Blue"}:   2,
		{"p3", "XL", "Beige"}: 4,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FromCartData = %v, want %v", got, want)
	}
}

func TestReplaceIf_GuardRejects(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.AddToCart("p1", "M", "Blue", 1)

	if s.ReplaceIf(map[Key]int{{"p2", "M", "Blue"}: 3}, func() bool { return false }) {
		t.Fatalf("ReplaceIf returned true with a rejecting guard")
	}
	if s.Quantity(Key{"p1", "M", "Blue"}) != 1 || s.Len() != 1 {
		t.Fatalf("cart changed despite guard: %+v", s.Lines())
	}
	if !s.ReplaceIf(map[Key]int{{"p2", "M", "Blue"}: 3}, func() bool { return true }) {
		t.Fatalf("ReplaceIf returned false with an accepting guard")
	}
	if s.Quantity(Key{"p2", "M", "Blue"}) != 3 || s.Len() != 1 {
		t.Fatalf("cart not replaced: %+v", s.Lines())
	}
}
