// Package search wraps the product search index. It forwards queries as
// they are, with no local ranking, and enriches the returned hits with
// genre and category facets.
package search

import (
	"context"
	"fmt"
	"sync"
)

// Hit is one product document as returned by the index.
type Hit map[string]any

type Query struct {
	Q      string
	Limit  int
	Offset int
}

type Facets struct {
	Genres     map[string]int `json:"genres"`
	Categories map[string]int `json:"categories"`
}

type Result struct {
	Hits             []Hit  `json:"hits"`
	EstimatedTotal   int64  `json:"estimatedTotalHits"`
	Facets           Facets `json:"facets"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
}

// RawResult is what a Backend returns before enrichment.
type RawResult struct {
	Hits             []Hit
	EstimatedTotal   int64
	ProcessingTimeMs int64
}

// Backend runs one query against one index.
type Backend interface {
	Search(ctx context.Context, index string, q Query) (*RawResult, error)
}

// Service is the single search entry point of the storefront. The backend
// is created on first use.
type Service struct {
	index      string
	newBackend func() Backend

	once    sync.Once
	backend Backend
}

// NewService builds a Service over a Meilisearch instance.
func NewService(host, apiKey, index string) *Service {
	return &Service{
		index:      index,
		newBackend: func() Backend { return newMeiliBackend(host, apiKey) },
	}
}

// NewServiceWithBackend is NewService with a custom Backend.
func NewServiceWithBackend(index string, b Backend) *Service {
	return &Service{index: index, newBackend: func() Backend { return b }}
}

func (s *Service) client() Backend {
	s.once.Do(func() {
		s.backend = s.newBackend()
	})
	return s.backend
}

// SearchProducts forwards q to the index and enriches the hits. Backend
// errors are returned unchanged.
func (s *Service) SearchProducts(ctx context.Context, q Query) (*Result, error) {
	raw, err := s.client().Search(ctx, s.index, q)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("search %q: empty response", s.index)
	}
	hits := raw.Hits
	if hits == nil {
		hits = []Hit{}
	}
	return &Result{
		Hits:             hits,
		EstimatedTotal:   raw.EstimatedTotal,
		Facets:           Enrich(hits),
		ProcessingTimeMs: raw.ProcessingTimeMs,
	}, nil
}
