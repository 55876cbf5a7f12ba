package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/logging"
	"github.com/dmitrijs2005/labelshop/internal/storefront/commerce"
	"github.com/dmitrijs2005/labelshop/internal/storefront/config"
	"github.com/dmitrijs2005/labelshop/internal/storefront/content"
	"github.com/dmitrijs2005/labelshop/internal/storefront/ratelimit"
	"github.com/dmitrijs2005/labelshop/internal/storefront/search"
	"github.com/dmitrijs2005/labelshop/internal/storefront/state"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("backend exploded")

func cartDoc(id string) *commerce.Cart {
	c := &commerce.Cart{}
	_ = json.Unmarshal([]byte(`{"id":"`+id+`","region_id":"reg_us","items":[]}`), c)
	return c
}

type fakeCommerce struct {
	mu      sync.Mutex
	calls   []string
	regions []commerce.Region
	carts   map[string]bool
	product map[string]any
	result  *commerce.CompleteResult
	err     error
	created int
}

func newFakeCommerce() *fakeCommerce {
	return &fakeCommerce{
		regions: []commerce.Region{
			{ID: "reg_eu", Countries: []commerce.Country{{ISO2: "de"}}},
			{ID: "reg_us", Countries: []commerce.Country{{ISO2: "us"}}},
		},
		carts: map[string]bool{"cart_1": true},
	}
}

func (f *fakeCommerce) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeCommerce) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCommerce) ListRegions(ctx context.Context) ([]commerce.Region, error) {
	if err := f.record("ListRegions"); err != nil {
		return nil, err
	}
	return f.regions, nil
}

func (f *fakeCommerce) GetProductByHandle(ctx context.Context, handle, regionID string) (map[string]any, error) {
	if err := f.record("GetProductByHandle " + handle + " " + regionID); err != nil {
		return nil, err
	}
	if f.product == nil || f.product["handle"] != handle {
		return nil, common.ErrorNotFound
	}
	return f.product, nil
}

func (f *fakeCommerce) CreateCart(ctx context.Context, regionID string) (*commerce.Cart, error) {
	if err := f.record("CreateCart " + regionID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.created++
	id := "cart_new"
	f.carts[id] = true
	f.mu.Unlock()
	return cartDoc(id), nil
}

func (f *fakeCommerce) GetCart(ctx context.Context, cartID string) (*commerce.Cart, error) {
	if err := f.record("GetCart " + cartID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.carts[cartID] {
		return nil, &commerce.APIError{Status: http.StatusNotFound, Message: "Cart not found"}
	}
	return cartDoc(cartID), nil
}

func (f *fakeCommerce) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*commerce.Cart, error) {
	if err := f.record("AddLineItem " + cartID + " " + variantID + " " + strconv.Itoa(quantity)); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.carts[cartID] {
		return nil, &commerce.APIError{Status: http.StatusNotFound, Message: "Cart not found"}
	}
	return cartDoc(cartID), nil
}

func (f *fakeCommerce) UpdateLineItem(ctx context.Context, cartID, lineID string, quantity int) (*commerce.Cart, error) {
	if err := f.record("UpdateLineItem " + cartID + " " + lineID + " " + strconv.Itoa(quantity)); err != nil {
		return nil, err
	}
	return cartDoc(cartID), nil
}

func (f *fakeCommerce) DeleteLineItem(ctx context.Context, cartID, lineID string) (*commerce.Cart, error) {
	if err := f.record("DeleteLineItem " + cartID + " " + lineID); err != nil {
		return nil, err
	}
	return cartDoc(cartID), nil
}

func (f *fakeCommerce) UpdateCartEmail(ctx context.Context, cartID, email string) (*commerce.Cart, error) {
	if err := f.record("UpdateCartEmail " + cartID + " " + email); err != nil {
		return nil, err
	}
	return cartDoc(cartID), nil
}

func (f *fakeCommerce) ListShippingOptions(ctx context.Context, cartID string) (commerce.Document, error) {
	if err := f.record("ListShippingOptions " + cartID); err != nil {
		return nil, err
	}
	return commerce.Document(`[{"id":"so_1","name":"Standard"}]`), nil
}

func (f *fakeCommerce) AddShippingMethod(ctx context.Context, cartID, optionID string) (*commerce.Cart, error) {
	if err := f.record("AddShippingMethod " + cartID + " " + optionID); err != nil {
		return nil, err
	}
	return cartDoc(cartID), nil
}

func (f *fakeCommerce) CalculateTaxes(ctx context.Context, cartID string) (*commerce.Cart, error) {
	if err := f.record("CalculateTaxes " + cartID); err != nil {
		return nil, err
	}
	return cartDoc(cartID), nil
}

func (f *fakeCommerce) CompleteCart(ctx context.Context, cartID string) (*commerce.CompleteResult, error) {
	if err := f.record("CompleteCart " + cartID); err != nil {
		return nil, err
	}
	return f.result, nil
}

type fakeSearch struct {
	calls int
	last  search.Query
	res   *search.Result
	err   error
}

func (f *fakeSearch) SearchProducts(ctx context.Context, q search.Query) (*search.Result, error) {
	f.calls++
	f.last = q
	return f.res, f.err
}

type fakeNews struct {
	calls int
	limit int
	off   int
	tag   string
	err   error
}

func (f *fakeNews) ListNews(ctx context.Context, limit, offset int, tag string) (*content.NewsPage, error) {
	f.calls++
	f.limit, f.off, f.tag = limit, offset, tag
	if f.err != nil {
		return nil, f.err
	}
	return &content.NewsPage{
		News:   []json.RawMessage{json.RawMessage(`{"slug":"spring-tour"}`)},
		Count:  1,
		Limit:  limit,
		Offset: offset,
	}, nil
}

type testDeps struct {
	commerce *fakeCommerce
	search   *fakeSearch
	news     *fakeNews
	sessions *state.SQLiteCartSessions
	meta     *state.SQLiteMetadata
	limiter  *ratelimit.Limiter
	opts     Options
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	db, err := state.Open(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &testDeps{
		commerce: newFakeCommerce(),
		search:   &fakeSearch{res: &search.Result{Hits: []search.Hit{}}},
		news:     &fakeNews{},
		sessions: state.NewSQLiteCartSessions(db),
		meta:     state.NewSQLiteMetadata(db),
		limiter:  ratelimit.New(60, time.Minute),
		opts: Options{
			Public: config.Public{
				BackendURL:     "http://commerce.test",
				PublishableKey: "pk_test",
				SearchHost:     "http://search.test",
				SearchAPIKey:   "search-only",
				SearchIndex:    "products",
				DefaultRegion:  "us",
			},
			CORSOrigins: []string{"https://shop.test"},
		},
	}
}

func (d *testDeps) handler() *Handler {
	return NewHandler(d.commerce, d.search, d.news, d.sessions, d.meta, d.limiter, d.opts, logging.Nop())
}

func do(t *testing.T, h http.Handler, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", sessionCookieName)
	return nil
}
