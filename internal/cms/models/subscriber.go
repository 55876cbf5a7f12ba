package models

import "time"

// FeedSubscriber receives an email when a news entry is first published.
type FeedSubscriber struct {
	ID               string
	Email            string
	UnsubscribeToken string
	CreatedAt        time.Time
	UnsubscribedAt   *time.Time
}
