package commerce

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	key    string
	body   map[string]any
}

func newBackend(t *testing.T, status int, resp string) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, key: r.Header.Get(common.PublishableKeyHeaderName)}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "pk_test", time.Second), &calls
}

func TestAddLineItem(t *testing.T) {
	c, calls := newBackend(t, http.StatusOK, `{"cart":{"id":"cart_1","region_id":"reg_1","items":[{"id":"li_1"}]}}`)

	cart, err := c.AddLineItem(context.Background(), "cart_1", "variant_9", 2)
	require.NoError(t, err)
	assert.Equal(t, "cart_1", cart.ID)
	assert.Equal(t, "reg_1", cart.RegionID)
	assert.JSONEq(t, `{"id":"cart_1","region_id":"reg_1","items":[{"id":"li_1"}]}`, string(cart.Raw))

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/store/carts/cart_1/line-items", got.path)
	assert.Equal(t, "pk_test", got.key)
	assert.Equal(t, map[string]any{"variant_id": "variant_9", "quantity": float64(2)}, got.body)
}

func TestCartMarshalPassesThrough(t *testing.T) {
	var c Cart
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c","total":1200}`), &c))
	out, err := json.Marshal(map[string]any{"cart": c})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cart":{"id":"c","total":1200}}`, string(out))

	out, err = json.Marshal(Cart{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestGetCart_NotFound(t *testing.T) {
	c, _ := newBackend(t, http.StatusNotFound, `{"type":"not_found","message":"Cart id not found: x"}`)

	_, err := c.GetCart(context.Background(), "x")
	require.ErrorIs(t, err, common.ErrorNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Cart id not found: x", apiErr.Message)
}

func TestUpstreamFailure(t *testing.T) {
	c, _ := newBackend(t, http.StatusInternalServerError, `oops`)

	_, err := c.CreateCart(context.Background(), "reg")
	require.ErrorIs(t, err, common.ErrorUpstream)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestTransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", 200*time.Millisecond)
	_, err := c.ListRegions(context.Background())
	require.ErrorIs(t, err, common.ErrorUpstream)
}

func TestGetProductByHandle(t *testing.T) {
	c, calls := newBackend(t, http.StatusOK, `{"products":[{"id":"prod_1","handle":"night-drive-lp"}]}`)

	p, err := c.GetProductByHandle(context.Background(), "night-drive-lp", "reg_1")
	require.NoError(t, err)
	assert.Equal(t, "prod_1", p["id"])

	q := (*calls)[0].query
	assert.Contains(t, q, "handle=night-drive-lp")
	assert.Contains(t, q, "region_id=reg_1")
}

func TestGetProductByHandle_Empty(t *testing.T) {
	c, _ := newBackend(t, http.StatusOK, `{"products":[]}`)
	_, err := c.GetProductByHandle(context.Background(), "nope", "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteLineItem_ReturnsParent(t *testing.T) {
	c, calls := newBackend(t, http.StatusOK, `{"id":"li_1","object":"line-item","deleted":true,"parent":{"id":"cart_1"}}`)

	cart, err := c.DeleteLineItem(context.Background(), "cart_1", "li_1")
	require.NoError(t, err)
	assert.Equal(t, "cart_1", cart.ID)
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
	assert.Equal(t, "/store/carts/cart_1/line-items/li_1", (*calls)[0].path)
}

func TestCompleteCart(t *testing.T) {
	c, _ := newBackend(t, http.StatusOK, `{"type":"order","order":{"id":"order_1"}}`)
	res, err := c.CompleteCart(context.Background(), "cart_1")
	require.NoError(t, err)
	assert.True(t, res.IsOrder())

	c, _ = newBackend(t, http.StatusOK, `{"type":"cart","cart":{"id":"cart_1"},"error":{"message":"payment failed"}}`)
	res, err = c.CompleteCart(context.Background(), "cart_1")
	require.NoError(t, err)
	assert.False(t, res.IsOrder())
	assert.Equal(t, "cart_1", res.Cart.ID)
}

func TestListShippingOptions(t *testing.T) {
	c, calls := newBackend(t, http.StatusOK, `{"shipping_options":[{"id":"so_1"}]}`)
	opts, err := c.ListShippingOptions(context.Background(), "cart_1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"so_1"}]`, string(opts))
	assert.Equal(t, "cart_id=cart_1", (*calls)[0].query)
}

func TestRegionHasCountry(t *testing.T) {
	r := Region{Countries: []Country{{ISO2: "us"}, {ISO2: "ca"}}}
	assert.True(t, r.HasCountry("US"))
	assert.False(t, r.HasCountry("de"))
}
