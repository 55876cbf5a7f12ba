package httpapi

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/storefront/state"
)

// defaultRegionID resolves the region for the configured country code.
// Lookups go memory, then the state store, then the backend; a failed
// lookup is not memoized.
func (h *Handler) defaultRegionID(ctx context.Context) (string, error) {
	h.regionMu.Lock()
	defer h.regionMu.Unlock()

	if h.regionID != "" {
		return h.regionID, nil
	}

	cached, err := h.meta.Get(ctx, state.KeyDefaultRegionID)
	if err != nil {
		h.log.Warn(ctx, "region cache read failed", "error", err.Error())
	} else if len(cached) > 0 {
		h.regionID = string(cached)
		return h.regionID, nil
	}

	regions, err := h.commerce.ListRegions(ctx)
	if err != nil {
		return "", fmt.Errorf("list regions: %w", err)
	}
	if len(regions) == 0 {
		return "", fmt.Errorf("%w: backend has no regions", common.ErrorUpstream)
	}

	id, found := regions[0].ID, false
	for _, r := range regions {
		if r.HasCountry(h.opts.Public.DefaultRegion) {
			id, found = r.ID, true
			break
		}
	}
	if !found {
		h.log.Warn(ctx, "no region for country, using first region",
			"country", h.opts.Public.DefaultRegion, "region_id", id)
	}

	if err := h.meta.Set(ctx, state.KeyDefaultRegionID, []byte(id)); err != nil {
		h.log.Warn(ctx, "region cache write failed", "error", err.Error())
	}
	h.regionID = id
	return id, nil
}
