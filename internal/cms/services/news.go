package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/repomanager"
	"github.com/dmitrijs2005/labelshop/internal/logging"
)

// MaxPageLimit bounds every listing.
const MaxPageLimit = 200

// PublishNotifier is told about entries that became public for the first time.
type PublishNotifier interface {
	NotifyPublished(ctx context.Context, e *models.NewsEntry)
}

type NewsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    PublishNotifier
	log         logging.Logger
	now         func() time.Time
}

func NewNewsService(db *sql.DB, m repomanager.RepositoryManager, notifier PublishNotifier, log logging.Logger) *NewsService {
	return &NewsService{
		db:          db,
		repomanager: m,
		notifier:    notifier,
		log:         log.With("module", "news"),
		now:         time.Now,
	}
}

func checkPage(q models.ListQuery) error {
	if q.Limit < 1 || q.Limit > MaxPageLimit {
		return invalid("limit must be between 1 and %d", MaxPageLimit)
	}
	if q.Offset < 0 {
		return invalid("offset must be zero or positive")
	}
	return nil
}

// ListPublished returns one page of public entries and the total count.
func (s *NewsService) ListPublished(ctx context.Context, limit, offset int, tag string) ([]*models.NewsEntry, int, error) {
	return s.List(ctx, models.ListQuery{Limit: limit, Offset: offset, PublishedOnly: true, Tag: tag})
}

func (s *NewsService) GetPublished(ctx context.Context, slug string) (*models.NewsEntry, error) {
	return s.repomanager.News(s.db).GetPublishedBySlug(ctx, slug)
}

func (s *NewsService) List(ctx context.Context, q models.ListQuery) ([]*models.NewsEntry, int, error) {
	if err := checkPage(q); err != nil {
		return nil, 0, err
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, invalid("status must be one of draft, published, archived")
	}
	return s.repomanager.News(s.db).List(ctx, q)
}

func (s *NewsService) Get(ctx context.Context, id string) (*models.NewsEntry, error) {
	return s.repomanager.News(s.db).GetByID(ctx, id)
}

func (s *NewsService) Create(ctx context.Context, in NewsInput) (*models.NewsEntry, error) {
	e, err := in.toEntry(s.now())
	if err != nil {
		return nil, err
	}
	created, err := s.repomanager.News(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	s.afterPublish(ctx, created)
	return created, nil
}

func (s *NewsService) Update(ctx context.Context, id string, in NewsInput) (*models.NewsEntry, error) {
	e, err := in.toEntry(s.now())
	if err != nil {
		return nil, err
	}
	e.ID = id
	updated, err := s.repomanager.News(s.db).Update(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	s.afterPublish(ctx, updated)
	return updated, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	return s.repomanager.News(s.db).SoftDelete(ctx, id)
}

// Publish makes the entry public, keeping an earlier published_at.
func (s *NewsService) Publish(ctx context.Context, id string) (*models.NewsEntry, error) {
	e, err := s.repomanager.News(s.db).Publish(ctx, id, s.now())
	if err != nil {
		return nil, fmt.Errorf("publish news: %w", err)
	}
	s.afterPublish(ctx, e)
	return e, nil
}

func (s *NewsService) Archive(ctx context.Context, id string) (*models.NewsEntry, error) {
	e, err := s.repomanager.News(s.db).Archive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("archive news: %w", err)
	}
	return e, nil
}

// afterPublish notifies subscribers once per entry. Failures are logged only.
func (s *NewsService) afterPublish(ctx context.Context, e *models.NewsEntry) {
	if e.Status != models.StatusPublished || e.NotifiedAt != nil || s.notifier == nil {
		return
	}
	// Once claimed the entry is never notified again, so the sends must not
	// stop when the operator's request goes away.
	ctx = context.WithoutCancel(ctx)
	now := s.now()
	claimed, err := s.repomanager.News(s.db).MarkNotified(ctx, e.ID, now)
	if err != nil {
		s.log.Error(ctx, "mark notified failed", "id", e.ID, "error", err.Error())
		return
	}
	if !claimed {
		return
	}
	e.NotifiedAt = &now
	s.notifier.NotifyPublished(ctx, e)
}
