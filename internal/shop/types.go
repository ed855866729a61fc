package shop

import (
	"encoding/json"
	"math"
)

// Status is the envelope every storefront API response carries.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (s Status) status() Status { return s }

type enveloped interface {
	status() Status
}

// ProductListResponse mirrors GET /api/product/list.
type ProductListResponse struct {
	Status
	Products []Product `json:"products"`
}

// CartResponse mirrors POST /api/cart/get.
type CartResponse struct {
	Status
	CartData CartData `json:"cartData"`
}

// CartData is the nested itemId -> size -> color -> quantity map the backend
// stores. Leaves are kept raw so callers can decide what to do with values
// that are not positive integers.
type CartData map[string]map[string]map[string]json.RawMessage

// CartRequest is the body of /api/cart/add and /api/cart/update.
type CartRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

type cartGetRequest struct {
	UserID *string `json:"userId"`
}

// Product describes a catalog entry in transport form.
type Product struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	Category     string   `json:"category"`
	Sizes        []string `json:"sizes"`
	Colors       []string `json:"colors"`
	Availability bool     `json:"availability"`
	Images       []string `json:"image"`
	BestSeller   bool     `json:"bestSeller,omitempty"`
}

// UnmarshalJSON tolerates a non-numeric price by recording NaN instead of
// failing the whole product list.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	var raw struct {
		alias
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Product(raw.alias)
	p.Price = math.NaN()
	if len(raw.Price) > 0 {
		var price float64
		if err := json.Unmarshal(raw.Price, &price); err == nil {
			p.Price = price
		}
	}
	return nil
}

// HasValidPrice reports whether the price is a finite non-negative number.
func (p Product) HasValidPrice() bool {
	return !math.IsNaN(p.Price) && !math.IsInf(p.Price, 0) && p.Price >= 0
}
