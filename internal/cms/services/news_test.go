package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 2, 7, 3, 0, 0, 0, time.UTC)

func newNewsService(t *testing.T, repo *fakeNewsRepo, n PublishNotifier) *NewsService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	s := NewNewsService(db, &fakeRepoManager{news: repo}, n, logging.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestNewsCreate_DerivesSlugAndDefaults(t *testing.T) {
	repo := &fakeNewsRepo{}
	s := newNewsService(t, repo, nil)

	got, err := s.Create(context.Background(), NewsInput{
		Title: "  Spring Tour: Dates Announced ",
		Tags:  []string{" tour ", "tour", "", "live"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Spring Tour: Dates Announced", got.Title)
	assert.Equal(t, "spring-tour-dates-announced", got.Slug)
	assert.Equal(t, models.StatusDraft, got.Status)
	assert.Nil(t, got.PublishedAt)
	assert.Equal(t, []string{"tour", "live"}, got.Tags)
}

func TestNewsCreate_Validation(t *testing.T) {
	s := newNewsService(t, &fakeNewsRepo{}, nil)

	tests := []NewsInput{
		{Title: ""},
		{Title: "ok", Slug: "Not A Slug"},
		{Title: "ok", Status: "scheduled"},
		{Title: "!!!"},
	}
	for _, in := range tests {
		_, err := s.Create(context.Background(), in)
		assert.ErrorIs(t, err, common.ErrorValidation, "%+v", in)
	}
}

func TestNewsCreate_PublishedNotifiesOnce(t *testing.T) {
	repo := &fakeNewsRepo{markResult: true}
	n := &recordingNotifier{}
	s := newNewsService(t, repo, n)

	got, err := s.Create(context.Background(), NewsInput{Title: "Out now", Status: models.StatusPublished})
	require.NoError(t, err)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, fixedNow.Equal(*got.PublishedAt))
	assert.Equal(t, []string{"n1"}, n.entries)
	require.NotNil(t, got.NotifiedAt)
}

func TestNewsCreate_Conflict(t *testing.T) {
	s := newNewsService(t, &fakeNewsRepo{createErr: common.ErrorConflict}, nil)

	_, err := s.Create(context.Background(), NewsInput{Title: "Dup"})
	require.ErrorIs(t, err, common.ErrorConflict)
}

func TestNewsPublish(t *testing.T) {
	published := func() *models.NewsEntry {
		return &models.NewsEntry{ID: "n7", Status: models.StatusPublished, PublishedAt: &fixedNow}
	}

	t.Run("first publish notifies", func(t *testing.T) {
		repo := &fakeNewsRepo{published: published(), markResult: true}
		n := &recordingNotifier{}
		_, err := newNewsService(t, repo, n).Publish(context.Background(), "n7")
		require.NoError(t, err)
		assert.Equal(t, []string{"n7"}, n.entries)
	})

	t.Run("already claimed does not notify", func(t *testing.T) {
		repo := &fakeNewsRepo{published: published(), markResult: false}
		n := &recordingNotifier{}
		_, err := newNewsService(t, repo, n).Publish(context.Background(), "n7")
		require.NoError(t, err)
		assert.Empty(t, n.entries)
	})

	t.Run("already notified skips claim", func(t *testing.T) {
		e := published()
		e.NotifiedAt = &fixedNow
		repo := &fakeNewsRepo{published: e, markResult: true}
		n := &recordingNotifier{}
		_, err := newNewsService(t, repo, n).Publish(context.Background(), "n7")
		require.NoError(t, err)
		assert.Zero(t, repo.markCalls)
		assert.Empty(t, n.entries)
	})

	t.Run("mark failure does not fail publish", func(t *testing.T) {
		repo := &fakeNewsRepo{published: published(), markErr: errors.New("db down")}
		n := &recordingNotifier{}
		_, err := newNewsService(t, repo, n).Publish(context.Background(), "n7")
		require.NoError(t, err)
		assert.Empty(t, n.entries)
	})

	t.Run("cancelled request still notifies", func(t *testing.T) {
		repo := &fakeNewsRepo{published: published(), markResult: true}
		n := &recordingNotifier{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newNewsService(t, repo, n).Publish(ctx, "n7")
		require.NoError(t, err)
		assert.Equal(t, []string{"n7"}, n.entries)
		assert.Equal(t, []error{nil}, n.ctxErrs)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeNewsRepo{publishErr: common.ErrorNotFound}
		_, err := newNewsService(t, repo, nil).Publish(context.Background(), "missing")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestNewsListPublished(t *testing.T) {
	repo := &fakeNewsRepo{listOut: []*models.NewsEntry{{ID: "n1"}}, listTotal: 41}
	s := newNewsService(t, repo, nil)

	got, total, err := s.ListPublished(context.Background(), 20, 40, "tour")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 41, total)
	assert.Equal(t, models.ListQuery{Limit: 20, Offset: 40, PublishedOnly: true, Tag: "tour"}, repo.listQuery)
}

func TestNewsList_RejectsBadPages(t *testing.T) {
	repo := &fakeNewsRepo{}
	s := newNewsService(t, repo, nil)

	for _, q := range []models.ListQuery{
		{Limit: 0}, {Limit: 201}, {Limit: 10, Offset: -1}, {Limit: 10, Status: "scheduled"},
	} {
		_, _, err := s.List(context.Background(), q)
		assert.ErrorIs(t, err, common.ErrorValidation, "%+v", q)
	}
	assert.Equal(t, models.ListQuery{}, repo.listQuery, "repository must not be reached")
}

func TestNewsUpdate_KeepsID(t *testing.T) {
	repo := &fakeNewsRepo{}
	s := newNewsService(t, repo, nil)

	got, err := s.Update(context.Background(), "n3", NewsInput{Title: "Edited", Slug: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "n3", got.ID)
	assert.Equal(t, "n3", repo.updatedWith.ID)
}
