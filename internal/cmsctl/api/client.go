// Package api is the operator CLI's client for the CMS admin REST API. It
// attaches the stored access token and refreshes it once on a 401.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cmsctl/store"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
)

// ErrNotLoggedIn means no session is stored locally.
var ErrNotLoggedIn = errors.New("not logged in, run `cmsctl login` first")

// Sessions persists the operator session between runs.
type Sessions interface {
	Load(ctx context.Context) (*store.Session, error)
	Save(ctx context.Context, sess *store.Session) error
}

// APIError is a non-2xx answer from the CMS.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cms: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorConflict
	default:
		return common.ErrorUpstream
	}
}

type Client struct {
	baseURL  string
	hc       *http.Client
	sessions Sessions
	now      func() time.Time
}

func New(baseURL string, timeout time.Duration, sessions Sessions) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		hc:       &http.Client{Timeout: timeout},
		sessions: sessions,
		now:      time.Now,
	}
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (c *Client) sessionFrom(email string, p *tokenPair) *store.Session {
	return &store.Session{
		Email:        email,
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    c.now().Add(time.Duration(p.ExpiresIn) * time.Second),
	}
}

// Login exchanges credentials for tokens and stores them.
func (c *Client) Login(ctx context.Context, email string, password []byte) (*store.Session, error) {
	body := map[string]string{"email": email, "password": string(password)}
	var pair tokenPair
	if err := c.do(ctx, http.MethodPost, "/admin/auth/token", nil, "", body, &pair); err != nil {
		return nil, err
	}
	sess := c.sessionFrom(email, &pair)
	if err := c.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (c *Client) refresh(ctx context.Context, sess *store.Session) (*store.Session, error) {
	var pair tokenPair
	body := map[string]string{"refresh_token": sess.RefreshToken}
	if err := c.do(ctx, http.MethodPost, "/admin/auth/refresh", nil, "", body, &pair); err != nil {
		return nil, err
	}
	next := c.sessionFrom(sess.Email, &pair)
	if err := c.sessions.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return next, nil
}

// authed sends an operator request. On 401 it rotates the tokens and tries
// exactly once more.
func (c *Client) authed(ctx context.Context, method, path string, query url.Values, body, out any) error {
	sess, err := c.sessions.Load(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNotLoggedIn
	}

	err = c.do(ctx, method, path, query, sess.AccessToken, body, out)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}

	sess, err = c.refresh(ctx, sess)
	if err != nil {
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return fmt.Errorf("%w: session expired, run `cmsctl login` again", common.ErrorUnauthorized)
		}
		return err
	}
	return c.do(ctx, method, path, query, sess.AccessToken, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	h := http.Header{}
	if token != "" {
		h.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	err := httpx.DoJSON(ctx, c.hc, method, u, h, body, out)
	var se *httpx.StatusError
	if errors.As(err, &se) {
		return &APIError{Status: se.Status, Message: se.Message}
	}
	return err
}
