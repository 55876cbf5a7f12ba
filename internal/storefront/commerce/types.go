package commerce

import (
	"encoding/json"
	"strings"
)

// Document is an upstream JSON object passed through to callers as is.
type Document = json.RawMessage

// Cart keeps the raw upstream document plus the fields the storefront reads.
type Cart struct {
	ID       string
	RegionID string
	Raw      Document
}

func (c *Cart) UnmarshalJSON(b []byte) error {
	var head struct {
		ID       string `json:"id"`
		RegionID string `json:"region_id"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	c.ID, c.RegionID = head.ID, head.RegionID
	c.Raw = append(c.Raw[:0], b...)
	return nil
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if len(c.Raw) == 0 {
		return []byte("null"), nil
	}
	return c.Raw, nil
}

type Country struct {
	ISO2 string `json:"iso_2"`
}

type Region struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currency_code"`
	Countries    []Country `json:"countries"`
}

// HasCountry reports whether iso2 (case-insensitive) belongs to the region.
func (r Region) HasCountry(iso2 string) bool {
	for _, c := range r.Countries {
		if strings.EqualFold(c.ISO2, iso2) {
			return true
		}
	}
	return false
}

// CompleteResult is either a placed order or the cart with an error.
type CompleteResult struct {
	Type  string   `json:"type"`
	Order Document `json:"order,omitempty"`
	Cart  *Cart    `json:"cart,omitempty"`
	Error Document `json:"error,omitempty"`
}

// IsOrder reports whether the cart was turned into an order.
func (r *CompleteResult) IsOrder() bool {
	return r.Type == "order" && len(r.Order) > 0
}
