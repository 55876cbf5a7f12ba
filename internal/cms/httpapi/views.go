package httpapi

import (
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
)

type seoView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// publicNews is what the storefront sees: no lifecycle or bookkeeping fields.
type publicNews struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"published_at"`
	Tags        []string   `json:"tags"`
	CoverURL    string     `json:"cover_url"`
	SEO         seoView    `json:"seo"`
}

type adminNews struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Excerpt        string        `json:"excerpt"`
	Content        string        `json:"content"`
	Author         string        `json:"author"`
	Status         models.Status `json:"status"`
	PublishedAt    *time.Time    `json:"published_at"`
	Tags           []string      `json:"tags"`
	CoverURL       string        `json:"cover_url"`
	SEOTitle       string        `json:"seo_title"`
	SEODescription string        `json:"seo_description"`
	NotifiedAt     *time.Time    `json:"notified_at"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type publicDiscography struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Artist        string   `json:"artist"`
	ReleaseYear   *int     `json:"release_year"`
	ReleaseDate   *string  `json:"release_date"`
	Format        string   `json:"format"`
	CatalogNumber string   `json:"catalog_number"`
	Description   string   `json:"description"`
	CoverURL      string   `json:"cover_url"`
	ProductHandle string   `json:"product_handle"`
	Tags          []string `json:"tags"`
}

type adminDiscography struct {
	publicDiscography
	Status    models.Status `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func toPublicNews(e *models.NewsEntry) publicNews {
	return publicNews{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Excerpt:     e.Excerpt,
		Content:     e.Content,
		Author:      e.Author,
		PublishedAt: e.PublishedAt,
		Tags:        tagsOrEmpty(e.Tags),
		CoverURL:    e.CoverURL,
		SEO:         seoView{Title: e.SEOTitle, Description: e.SEODescription},
	}
}

func toAdminNews(e *models.NewsEntry) adminNews {
	return adminNews{
		ID:             e.ID,
		Title:          e.Title,
		Slug:           e.Slug,
		Excerpt:        e.Excerpt,
		Content:        e.Content,
		Author:         e.Author,
		Status:         e.Status,
		PublishedAt:    e.PublishedAt,
		Tags:           tagsOrEmpty(e.Tags),
		CoverURL:       e.CoverURL,
		SEOTitle:       e.SEOTitle,
		SEODescription: e.SEODescription,
		NotifiedAt:     e.NotifiedAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toPublicDiscography(e *models.DiscographyEntry) publicDiscography {
	v := publicDiscography{
		ID:            e.ID,
		Title:         e.Title,
		Slug:          e.Slug,
		Artist:        e.Artist,
		ReleaseYear:   e.ReleaseYear,
		Format:        e.Format,
		CatalogNumber: e.CatalogNumber,
		Description:   e.Description,
		CoverURL:      e.CoverURL,
		ProductHandle: e.ProductHandle,
		Tags:          tagsOrEmpty(e.Tags),
	}
	if e.ReleaseDate != nil {
		d := e.ReleaseDate.Format(time.DateOnly)
		v.ReleaseDate = &d
	}
	return v
}

func toAdminDiscography(e *models.DiscographyEntry) adminDiscography {
	return adminDiscography{
		publicDiscography: toPublicDiscography(e),
		Status:            e.Status,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func mapSlice[T, V any](in []T, f func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, e := range in {
		out = append(out, f(e))
	}
	return out
}
