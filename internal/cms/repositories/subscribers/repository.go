// Package subscribers stores email addresses that receive feed notifications.
package subscribers

import (
	"context"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
)

type Repository interface {
	// Subscribe registers email, or reactivates it when it unsubscribed
	// earlier. An existing subscriber keeps its original unsubscribe token.
	Subscribe(ctx context.Context, email, token string) (*models.FeedSubscriber, error)
	// Unsubscribe deactivates the subscriber owning token.
	Unsubscribe(ctx context.Context, token string) error
	ListActive(ctx context.Context) ([]*models.FeedSubscriber, error)
}
