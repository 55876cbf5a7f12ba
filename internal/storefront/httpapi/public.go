package httpapi

import (
	"math"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/dmitrijs2005/labelshop/internal/money"
	"github.com/dmitrijs2005/labelshop/internal/storefront/search"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) healthcheck(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// publicConfig exposes only the browser-safe half of the configuration.
func (h *Handler) publicConfig(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.opts.Public)
}

func (h *Handler) listNews(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := newsPage.Parse(r.URL.Query())
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	page, err := h.news.ListNews(r.Context(), limit, offset, r.URL.Query().Get("tag"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := searchPage.Parse(r.URL.Query())
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	res, err := h.search.SearchProducts(r.Context(), search.Query{
		Q:      strings.TrimSpace(r.URL.Query().Get("q")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	regionID, err := h.defaultRegionID(ctx)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	product, err := h.commerce.GetProductByHandle(ctx, chi.URLParam(r, "handle"), regionID)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	formatPrices(product)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"product": product})
}

// formatPrices adds display strings next to every variant's calculated
// amounts. Amounts are minor units.
func formatPrices(product map[string]any) {
	variants, _ := product["variants"].([]any)
	for _, v := range variants {
		variant, ok := v.(map[string]any)
		if !ok {
			continue
		}
		price, ok := variant["calculated_price"].(map[string]any)
		if !ok {
			continue
		}
		code, _ := price["currency_code"].(string)
		if code == "" {
			continue
		}
		if amount, ok := price["calculated_amount"].(float64); ok {
			price["formatted"] = money.FormatAmount(code, int64(math.Round(amount)))
		}
		if amount, ok := price["original_amount"].(float64); ok {
			price["formatted_original"] = money.FormatAmount(code, int64(math.Round(amount)))
		}
	}
}
