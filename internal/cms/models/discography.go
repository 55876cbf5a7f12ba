package models

import "time"

type DiscographyEntry struct {
	ID            string
	Title         string
	Slug          string
	Artist        string
	ReleaseYear   *int
	ReleaseDate   *time.Time
	Format        string
	CatalogNumber string
	Description   string
	CoverURL      string
	// ProductHandle links the release to a product in the commerce catalogue.
	ProductHandle string
	Status        Status
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}
