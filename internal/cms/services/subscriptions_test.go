package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeSubscribersRepo{}
	s := NewSubscriptionService(db, &fakeRepoManager{subscribers: repo})

	sub, err := s.Subscribe(context.Background(), " Fan@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", sub.Email)
	assert.Len(t, sub.UnsubscribeToken, 48)
	assert.Equal(t, []string{"fan@example.com"}, repo.subscribed)

	_, err = s.Subscribe(context.Background(), "fan at example")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestUnsubscribe(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeSubscribersRepo{}
	s := NewSubscriptionService(db, &fakeRepoManager{subscribers: repo})

	require.NoError(t, s.Unsubscribe(context.Background(), "tok"))
	assert.Equal(t, []string{"tok"}, repo.unsubscribed)

	require.ErrorIs(t, s.Unsubscribe(context.Background(), "  "), common.ErrorValidation)
}

func TestFeedNotifier_ContinuesAfterFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeSubscribersRepo{active: []*models.FeedSubscriber{
		{ID: "s1", Email: "a@example.com", UnsubscribeToken: "ta"},
		{ID: "s2", Email: "b@example.com", UnsubscribeToken: "tb"},
		{ID: "s3", Email: "c@example.com", UnsubscribeToken: "tc"},
	}}
	sender := &recordingSender{failFor: map[string]error{"b@example.com": errors.New("bounced")}}
	n := NewFeedNotifier(db, &fakeRepoManager{subscribers: repo}, sender, "https://label.test/", logging.Nop())

	n.NotifyPublished(context.Background(), &models.NewsEntry{
		ID: "n1", Title: "New <record>", Slug: "new-record", Excerpt: "Out Friday",
	})

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "a@example.com", sender.sent[0].To)
	assert.Equal(t, "c@example.com", sender.sent[1].To)

	m := sender.sent[0]
	assert.Equal(t, "New <record>", m.Subject)
	assert.Contains(t, m.Text, "https://label.test/news/new-record")
	assert.Contains(t, m.Text, "https://label.test/unsubscribe?token=ta")
	assert.Contains(t, m.HTML, "New &lt;record&gt;")
	assert.False(t, strings.Contains(m.HTML, "<record>"))
}

func TestFeedNotifier_ListFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeSubscribersRepo{listErr: errors.New("db down")}
	sender := &recordingSender{}
	n := NewFeedNotifier(db, &fakeRepoManager{subscribers: repo}, sender, "https://label.test", logging.Nop())

	n.NotifyPublished(context.Background(), &models.NewsEntry{ID: "n1", Title: "x", Slug: "x"})
	assert.Empty(t, sender.sent)
}
