// Package content reads published news from the CMS backend for the
// storefront's /api/news route.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
)

// NewsPage is the CMS listing envelope. Entries are passed through as is.
type NewsPage struct {
	News   []json.RawMessage `json:"news"`
	Count  int               `json:"count"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type Client struct {
	baseURL string
	timeout time.Duration

	once sync.Once
	hc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *Client) httpClient() *http.Client {
	c.once.Do(func() {
		c.hc = &http.Client{Timeout: c.timeout}
	})
	return c.hc
}

// ListNews fetches one page of published news, optionally filtered by tag.
func (c *Client) ListNews(ctx context.Context, limit, offset int, tag string) (*NewsPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if tag != "" {
		q.Set("tag", tag)
	}

	var page NewsPage
	if err := httpx.DoJSON(ctx, c.httpClient(), http.MethodGet, c.baseURL+"/store/news?"+q.Encode(), nil, nil, &page); err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("%w: cms news: %v", common.ErrorUpstream, se)
		}
		return nil, err
	}
	if page.News == nil {
		page.News = []json.RawMessage{}
	}
	return &page, nil
}
