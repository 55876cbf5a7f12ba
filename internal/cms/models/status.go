// Package models defines the CMS data models persisted in Postgres.
package models

// Status is the editorial lifecycle state shared by news and discography entries.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is one of the accepted statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ListQuery carries validated pagination and filters for listing entries.
// Soft-deleted rows are never listed.
type ListQuery struct {
	Limit  int
	Offset int
	// PublishedOnly restricts the listing to publicly visible rows.
	PublishedOnly bool
	// Status filters admin listings; ignored when PublishedOnly is set.
	Status Status
	// Tag keeps rows whose tags contain this value.
	Tag string
}
