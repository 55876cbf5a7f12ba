package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/textx"
)

const (
	maxTitleLen = 300
	maxTags     = 32
)

// NewsInput is the operator-editable part of a news entry.
type NewsInput struct {
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
}

// DiscographyInput is the operator-editable part of a discography entry.
// ReleaseDate uses the YYYY-MM-DD layout.
type DiscographyInput struct {
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Artist        string        `json:"artist"`
	ReleaseYear   *int          `json:"release_year"`
	ReleaseDate   string        `json:"release_date"`
	Format        string        `json:"format"`
	CatalogNumber string        `json:"catalog_number"`
	Description   string        `json:"description"`
	CoverURL      string        `json:"cover_url"`
	ProductHandle string        `json:"product_handle"`
	Status        models.Status `json:"status"`
	Tags          []string      `json:"tags"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{common.ErrorValidation}, args...)...)
}

func validateTitleSlug(title, slug string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", invalid("title is required")
	}
	if len(title) > maxTitleLen {
		return "", "", invalid("title must be at most %d characters", maxTitleLen)
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = textx.Slugify(title)
	}
	if !textx.IsSlug(slug) {
		return "", "", invalid("slug must contain lowercase letters, digits and single hyphens")
	}
	return title, slug, nil
}

func validateStatus(s models.Status) (models.Status, error) {
	if s == "" {
		return models.StatusDraft, nil
	}
	if !s.Valid() {
		return "", invalid("status must be one of draft, published, archived")
	}
	return s, nil
}

// normalizeTags trims, drops empties and de-duplicates preserving order.
func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > maxTags {
		return nil, invalid("at most %d tags are allowed", maxTags)
	}
	return out, nil
}

func (in NewsInput) toEntry(now time.Time) (*models.NewsEntry, error) {
	title, slug, err := validateTitleSlug(in.Title, in.Slug)
	if err != nil {
		return nil, err
	}
	status, err := validateStatus(in.Status)
	if err != nil {
		return nil, err
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	publishedAt := in.PublishedAt
	if status == models.StatusPublished && publishedAt == nil {
		publishedAt = &now
	}

	return &models.NewsEntry{
		Title:          title,
		Slug:           slug,
		Excerpt:        strings.TrimSpace(in.Excerpt),
		Content:        in.Content,
		Author:         strings.TrimSpace(in.Author),
		Status:         status,
		PublishedAt:    publishedAt,
		Tags:           tags,
		CoverURL:       strings.TrimSpace(in.CoverURL),
		SEOTitle:       strings.TrimSpace(in.SEOTitle),
		SEODescription: strings.TrimSpace(in.SEODescription),
	}, nil
}

func (in DiscographyInput) toEntry() (*models.DiscographyEntry, error) {
	title, slug, err := validateTitleSlug(in.Title, in.Slug)
	if err != nil {
		return nil, err
	}
	status, err := validateStatus(in.Status)
	if err != nil {
		return nil, err
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}
	if in.ReleaseYear != nil && (*in.ReleaseYear < 1900 || *in.ReleaseYear > 2100) {
		return nil, invalid("release_year must be between 1900 and 2100")
	}

	e := &models.DiscographyEntry{
		Title:         title,
		Slug:          slug,
		Artist:        strings.TrimSpace(in.Artist),
		ReleaseYear:   in.ReleaseYear,
		Format:        strings.TrimSpace(in.Format),
		CatalogNumber: strings.TrimSpace(in.CatalogNumber),
		Description:   in.Description,
		CoverURL:      strings.TrimSpace(in.CoverURL),
		ProductHandle: strings.TrimSpace(in.ProductHandle),
		Status:        status,
		Tags:          tags,
	}

	if d := strings.TrimSpace(in.ReleaseDate); d != "" {
		t, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return nil, invalid("release_date must use YYYY-MM-DD")
		}
		e.ReleaseDate = &t
		if e.ReleaseYear == nil {
			y := t.Year()
			e.ReleaseYear = &y
		}
	}
	return e, nil
}
