package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

type meiliBackend struct {
	client meilisearch.ServiceManager
}

func newMeiliBackend(host, apiKey string) *meiliBackend {
	return &meiliBackend{client: meilisearch.New(host, meilisearch.WithAPIKey(apiKey))}
}

func (b *meiliBackend) Search(ctx context.Context, index string, q Query) (*RawResult, error) {
	resp, err := b.client.Index(index).SearchWithContext(ctx, q.Q, &meilisearch.SearchRequest{
		Limit:  int64(q.Limit),
		Offset: int64(q.Offset),
	})
	if err != nil {
		return nil, err
	}
	hits, err := decodeHits(resp.Hits)
	if err != nil {
		return nil, fmt.Errorf("decode hits: %w", err)
	}
	return &RawResult{
		Hits:             hits,
		EstimatedTotal:   resp.EstimatedTotalHits,
		ProcessingTimeMs: resp.ProcessingTimeMs,
	}, nil
}

// decodeHits turns the SDK's hit representation into plain documents.
func decodeHits(v any) ([]Hit, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw []Hit
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	hits := raw[:0]
	for _, h := range raw {
		if h != nil {
			hits = append(hits, h)
		}
	}
	return hits, nil
}
