package cart

import (
	"encoding/json"
	"log/slog"
	"math"

	"github.com/five82/storefront/internal/shop"
)

// FromCartData flattens the backend's nested cart into leaves. Leaves that are
// not positive whole numbers are skipped and logged; empty branches vanish.
func FromCartData(data shop.CartData, logger *slog.Logger) map[Key]int {
	if logger == nil {
		logger = slog.Default()
	}
	out := make(map[Key]int)
	for itemID, sizes := range data {
		for size, colors := range sizes {
			for color, raw := range colors {
				q, ok := parseQuantity(raw)
				if !ok {
					logger.Warn("skipping remote cart line with invalid quantity",
						"item_id", itemID, "size", size, "color", color, "raw", string(raw))
					continue
				}
				out[Key{ItemID: itemID, Size: size, Color: color}] = q
			}
		}
	}
	return out
}

func parseQuantity(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
