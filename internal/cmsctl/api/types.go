package api

import "time"

type NewsEntry struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	Content        string     `json:"content"`
	Author         string     `json:"author"`
	Status         string     `json:"status"`
	PublishedAt    *time.Time `json:"published_at"`
	Tags           []string   `json:"tags"`
	CoverURL       string     `json:"cover_url"`
	SEOTitle       string     `json:"seo_title"`
	SEODescription string     `json:"seo_description"`
	NotifiedAt     *time.Time `json:"notified_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type NewsInput struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug,omitempty"`
	Excerpt        string   `json:"excerpt,omitempty"`
	Content        string   `json:"content,omitempty"`
	Author         string   `json:"author,omitempty"`
	Status         string   `json:"status,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	CoverURL       string   `json:"cover_url,omitempty"`
	SEOTitle       string   `json:"seo_title,omitempty"`
	SEODescription string   `json:"seo_description,omitempty"`
}

type DiscographyEntry struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Artist        string    `json:"artist"`
	ReleaseYear   *int      `json:"release_year"`
	ReleaseDate   *string   `json:"release_date"`
	Format        string    `json:"format"`
	CatalogNumber string    `json:"catalog_number"`
	Description   string    `json:"description"`
	CoverURL      string    `json:"cover_url"`
	ProductHandle string    `json:"product_handle"`
	Tags          []string  `json:"tags"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type DiscographyInput struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug,omitempty"`
	Artist        string   `json:"artist,omitempty"`
	ReleaseYear   *int     `json:"release_year,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	Format        string   `json:"format,omitempty"`
	CatalogNumber string   `json:"catalog_number,omitempty"`
	Description   string   `json:"description,omitempty"`
	CoverURL      string   `json:"cover_url,omitempty"`
	ProductHandle string   `json:"product_handle,omitempty"`
	Status        string   `json:"status,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type ListOptions struct {
	Status string
	Tag    string
	Limit  int
	Offset int
}

// Upload is a presigned PUT for a cover image.
type Upload struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Key       string            `json:"key"`
	PublicURL string            `json:"public_url"`
	ExpiresAt time.Time         `json:"expires_at"`
	Headers   map[string]string `json:"headers"`
}
