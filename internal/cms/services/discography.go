package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/repomanager"
)

type DiscographyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDiscographyService(db *sql.DB, m repomanager.RepositoryManager) *DiscographyService {
	return &DiscographyService{db: db, repomanager: m}
}

func (s *DiscographyService) ListPublished(ctx context.Context, limit, offset int, tag string) ([]*models.DiscographyEntry, int, error) {
	return s.List(ctx, models.ListQuery{Limit: limit, Offset: offset, PublishedOnly: true, Tag: tag})
}

func (s *DiscographyService) GetPublished(ctx context.Context, slug string) (*models.DiscographyEntry, error) {
	return s.repomanager.Discography(s.db).GetPublishedBySlug(ctx, slug)
}

func (s *DiscographyService) List(ctx context.Context, q models.ListQuery) ([]*models.DiscographyEntry, int, error) {
	if err := checkPage(q); err != nil {
		return nil, 0, err
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, invalid("status must be one of draft, published, archived")
	}
	return s.repomanager.Discography(s.db).List(ctx, q)
}

func (s *DiscographyService) Get(ctx context.Context, id string) (*models.DiscographyEntry, error) {
	return s.repomanager.Discography(s.db).GetByID(ctx, id)
}

func (s *DiscographyService) Create(ctx context.Context, in DiscographyInput) (*models.DiscographyEntry, error) {
	e, err := in.toEntry()
	if err != nil {
		return nil, err
	}
	created, err := s.repomanager.Discography(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create discography entry: %w", err)
	}
	return created, nil
}

func (s *DiscographyService) Update(ctx context.Context, id string, in DiscographyInput) (*models.DiscographyEntry, error) {
	e, err := in.toEntry()
	if err != nil {
		return nil, err
	}
	e.ID = id
	updated, err := s.repomanager.Discography(s.db).Update(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("update discography entry: %w", err)
	}
	return updated, nil
}

func (s *DiscographyService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Discography(s.db).SoftDelete(ctx, id)
}
