package models

import "time"

type NewsEntry struct {
	ID             string
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	Author         string
	Status         Status
	PublishedAt    *time.Time
	Tags           []string
	CoverURL       string
	SEOTitle       string
	SEODescription string
	// NotifiedAt is set once subscribers have been emailed about the entry.
	NotifiedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
