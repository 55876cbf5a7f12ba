package httpx

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/common"
)

// Page bounds for a listing route.
type Page struct {
	DefaultLimit int
	MaxLimit     int
}

// Parse reads limit and offset from q. Missing values take the defaults;
// non-integers, limit outside [1, MaxLimit] or a negative offset are
// validation errors.
func (p Page) Parse(q url.Values) (limit, offset int, err error) {
	limit = p.DefaultLimit
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: limit must be an integer", common.ErrorValidation)
		}
	}
	if limit < 1 || limit > p.MaxLimit {
		return 0, 0, fmt.Errorf("%w: limit must be between 1 and %d", common.ErrorValidation, p.MaxLimit)
	}

	if raw := strings.TrimSpace(q.Get("offset")); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: offset must be an integer", common.ErrorValidation)
		}
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("%w: offset must be zero or positive", common.ErrorValidation)
	}
	return limit, offset, nil
}
