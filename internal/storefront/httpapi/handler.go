// Package httpapi is the storefront's server-side REST surface: thin routes
// that validate input and delegate to the commerce backend, the search
// index or the CMS.
package httpapi

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/dmitrijs2005/labelshop/internal/logging"
	"github.com/dmitrijs2005/labelshop/internal/storefront/commerce"
	"github.com/dmitrijs2005/labelshop/internal/storefront/config"
	"github.com/dmitrijs2005/labelshop/internal/storefront/content"
	"github.com/dmitrijs2005/labelshop/internal/storefront/ratelimit"
	"github.com/dmitrijs2005/labelshop/internal/storefront/search"
	"github.com/dmitrijs2005/labelshop/internal/storefront/state"
)

var (
	newsPage   = httpx.Page{DefaultLimit: 20, MaxLimit: 200}
	searchPage = httpx.Page{DefaultLimit: 20, MaxLimit: 100}
)

// Commerce is the part of the Store API the routes use.
type Commerce interface {
	ListRegions(ctx context.Context) ([]commerce.Region, error)
	GetProductByHandle(ctx context.Context, handle, regionID string) (map[string]any, error)
	CreateCart(ctx context.Context, regionID string) (*commerce.Cart, error)
	GetCart(ctx context.Context, cartID string) (*commerce.Cart, error)
	AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*commerce.Cart, error)
	UpdateLineItem(ctx context.Context, cartID, lineID string, quantity int) (*commerce.Cart, error)
	DeleteLineItem(ctx context.Context, cartID, lineID string) (*commerce.Cart, error)
	UpdateCartEmail(ctx context.Context, cartID, email string) (*commerce.Cart, error)
	ListShippingOptions(ctx context.Context, cartID string) (commerce.Document, error)
	AddShippingMethod(ctx context.Context, cartID, optionID string) (*commerce.Cart, error)
	CalculateTaxes(ctx context.Context, cartID string) (*commerce.Cart, error)
	CompleteCart(ctx context.Context, cartID string) (*commerce.CompleteResult, error)
}

type Searcher interface {
	SearchProducts(ctx context.Context, q search.Query) (*search.Result, error)
}

type NewsSource interface {
	ListNews(ctx context.Context, limit, offset int, tag string) (*content.NewsPage, error)
}

type Options struct {
	Public        config.Public
	CORSOrigins   []string
	SecureCookies bool
}

type Handler struct {
	commerce Commerce
	search   Searcher
	news     NewsSource
	sessions state.CartSessions
	meta     state.Metadata
	limiter  *ratelimit.Limiter
	opts     Options
	log      logging.Logger

	regionMu sync.Mutex
	regionID string
}

func NewHandler(
	c Commerce,
	s Searcher,
	news NewsSource,
	sessions state.CartSessions,
	meta state.Metadata,
	limiter *ratelimit.Limiter,
	opts Options,
	log logging.Logger,
) *Handler {
	return &Handler{
		commerce: c,
		search:   s,
		news:     news,
		sessions: sessions,
		meta:     meta,
		limiter:  limiter,
		opts:     opts,
		log:      log.With("module", "storefront_http"),
	}
}
