package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Tag != "" {
		q.Set("tag", o.Tag)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}

func (c *Client) ListNews(ctx context.Context, opts ListOptions) ([]NewsEntry, int, error) {
	var out struct {
		News  []NewsEntry `json:"news"`
		Count int         `json:"count"`
	}
	if err := c.authed(ctx, http.MethodGet, "/admin/news", opts.values(), nil, &out); err != nil {
		return nil, 0, err
	}
	return out.News, out.Count, nil
}

func (c *Client) CreateNews(ctx context.Context, in NewsInput) (*NewsEntry, error) {
	return c.newsCall(ctx, http.MethodPost, "/admin/news", in)
}

func (c *Client) PublishNews(ctx context.Context, id string) (*NewsEntry, error) {
	return c.newsCall(ctx, http.MethodPost, "/admin/news/"+url.PathEscape(id)+"/publish", nil)
}

func (c *Client) ArchiveNews(ctx context.Context, id string) (*NewsEntry, error) {
	return c.newsCall(ctx, http.MethodPost, "/admin/news/"+url.PathEscape(id)+"/archive", nil)
}

func (c *Client) newsCall(ctx context.Context, method, path string, body any) (*NewsEntry, error) {
	var out struct {
		News NewsEntry `json:"news"`
	}
	if err := c.authed(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out.News, nil
}

func (c *Client) ListDiscography(ctx context.Context, opts ListOptions) ([]DiscographyEntry, int, error) {
	var out struct {
		Discography []DiscographyEntry `json:"discography"`
		Count       int                `json:"count"`
	}
	if err := c.authed(ctx, http.MethodGet, "/admin/discography", opts.values(), nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Discography, out.Count, nil
}

func (c *Client) CreateDiscography(ctx context.Context, in DiscographyInput) (*DiscographyEntry, error) {
	var out struct {
		Entry DiscographyEntry `json:"discography_entry"`
	}
	if err := c.authed(ctx, http.MethodPost, "/admin/discography", nil, in, &out); err != nil {
		return nil, err
	}
	return &out.Entry, nil
}

// CreateUpload asks the CMS for a presigned cover upload.
func (c *Client) CreateUpload(ctx context.Context, filename, contentType string) (*Upload, error) {
	var out struct {
		Upload Upload `json:"upload"`
	}
	body := map[string]string{"filename": filename, "content_type": contentType}
	if err := c.authed(ctx, http.MethodPost, "/admin/uploads", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Upload, nil
}
