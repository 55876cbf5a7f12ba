package commerce

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/labelshop/internal/common"
)

// productFields asks the backend for variant prices in the requested region.
const productFields = "*variants.calculated_price,+variants.inventory_quantity"

func cartPath(cartID string, rest ...string) string {
	p := "/store/carts/" + url.PathEscape(cartID)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

type cartEnvelope struct {
	Cart Cart `json:"cart"`
}

func (c *Client) ListRegions(ctx context.Context) ([]Region, error) {
	var out struct {
		Regions []Region `json:"regions"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/regions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Regions, nil
}

// GetProductByHandle returns the product priced for regionID, or
// common.ErrorNotFound when no product has that handle.
func (c *Client) GetProductByHandle(ctx context.Context, handle, regionID string) (map[string]any, error) {
	q := url.Values{}
	q.Set("handle", handle)
	q.Set("fields", productFields)
	if regionID != "" {
		q.Set("region_id", regionID)
	}
	var out struct {
		Products []map[string]any `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/products", q, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Products) == 0 {
		return nil, common.ErrorNotFound
	}
	return out.Products[0], nil
}

func (c *Client) CreateCart(ctx context.Context, regionID string) (*Cart, error) {
	body := map[string]string{}
	if regionID != "" {
		body["region_id"] = regionID
	}
	var out cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	var out cartEnvelope
	if err := c.do(ctx, http.MethodGet, cartPath(cartID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error) {
	var out cartEnvelope
	body := map[string]any{"variant_id": variantID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, cartPath(cartID, "line-items"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) UpdateLineItem(ctx context.Context, cartID, lineID string, quantity int) (*Cart, error) {
	var out cartEnvelope
	body := map[string]any{"quantity": quantity}
	if err := c.do(ctx, http.MethodPost, cartPath(cartID, "line-items", lineID), nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

// DeleteLineItem removes the line and returns the updated cart.
func (c *Client) DeleteLineItem(ctx context.Context, cartID, lineID string) (*Cart, error) {
	var out struct {
		Parent Cart `json:"parent"`
	}
	if err := c.do(ctx, http.MethodDelete, cartPath(cartID, "line-items", lineID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Parent, nil
}

func (c *Client) UpdateCartEmail(ctx context.Context, cartID, email string) (*Cart, error) {
	var out cartEnvelope
	if err := c.do(ctx, http.MethodPost, cartPath(cartID), nil, map[string]string{"email": email}, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) ListShippingOptions(ctx context.Context, cartID string) (Document, error) {
	q := url.Values{}
	q.Set("cart_id", cartID)
	var out struct {
		ShippingOptions Document `json:"shipping_options"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/shipping-options", q, nil, &out); err != nil {
		return nil, err
	}
	if len(out.ShippingOptions) == 0 {
		return Document("[]"), nil
	}
	return out.ShippingOptions, nil
}

func (c *Client) AddShippingMethod(ctx context.Context, cartID, optionID string) (*Cart, error) {
	var out cartEnvelope
	if err := c.do(ctx, http.MethodPost, cartPath(cartID, "shipping-methods"), nil, map[string]string{"option_id": optionID}, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) CalculateTaxes(ctx context.Context, cartID string) (*Cart, error) {
	var out cartEnvelope
	if err := c.do(ctx, http.MethodPost, cartPath(cartID, "taxes"), nil, map[string]any{}, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) CompleteCart(ctx context.Context, cartID string) (*CompleteResult, error) {
	var out CompleteResult
	if err := c.do(ctx, http.MethodPost, cartPath(cartID, "complete"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
