// Package commerce is a small client for the Medusa Store API. It only
// shapes requests and decodes responses; all commerce logic stays upstream.
package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
)

type Client struct {
	baseURL        string
	publishableKey string
	timeout        time.Duration

	once sync.Once
	hc   *http.Client
}

// NewClient binds a client to the backend URL and publishable key. The
// underlying http.Client is created on first use.
func NewClient(baseURL, publishableKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
		timeout:        timeout,
	}
}

func (c *Client) httpClient() *http.Client {
	c.once.Do(func() {
		c.hc = &http.Client{Timeout: c.timeout}
	})
	return c.hc
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("commerce backend: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return common.ErrorNotFound
	}
	return common.ErrorUpstream
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	h := http.Header{}
	if c.publishableKey != "" {
		h.Set(common.PublishableKeyHeaderName, c.publishableKey)
	}

	err := httpx.DoJSON(ctx, c.httpClient(), method, u, h, body, out)
	var se *httpx.StatusError
	if errors.As(err, &se) {
		return &APIError{Status: se.Status, Message: se.Message}
	}
	return err
}
