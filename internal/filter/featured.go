package filter

import "github.com/five82/storefront/internal/shop"

// BestSellerLimit is how many best sellers the storefront features.
const BestSellerLimit = 5

// BestSellers returns up to limit products flagged as best sellers, in
// catalog order. A non-positive limit returns every flagged product.
func BestSellers(products []shop.Product, limit int) []shop.Product {
	var out []shop.Product
	for _, p := range products {
		if !p.BestSeller {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
