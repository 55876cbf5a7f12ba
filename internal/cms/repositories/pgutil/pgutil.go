// Package pgutil holds the query helpers shared by the CMS Postgres repositories.
package pgutil

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
)

// EncodeTags renders tags as a JSON array for a ::jsonb parameter.
// A nil slice becomes "[]".
func EncodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// DecodeTags parses a JSONB tags column. NULL and empty input yield an empty list.
func DecodeTags(raw []byte) ([]string, error) {
	tags := []string{}
	if len(raw) == 0 {
		return tags, nil
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}

// TimePtr converts a nullable timestamp into a pointer.
func TimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// NullTime is the inverse of TimePtr.
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Where accumulates AND-ed conditions and their positional arguments.
type Where struct {
	conds []string
	args  []any
}

// Add appends a condition. Each "?" in cond is replaced by the next $n placeholder.
func (w *Where) Add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// SQL returns the WHERE clause (empty when there are no conditions).
func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// Args returns the accumulated arguments.
func (w *Where) Args() []any {
	return w.args
}

// Next returns the placeholder for an argument appended after the current ones.
func (w *Where) Next(offset int) string {
	return fmt.Sprintf("$%d", len(w.args)+offset)
}

// ListFilter builds the visibility and tag conditions common to entry listings.
func ListFilter(q models.ListQuery) (*Where, error) {
	w := &Where{}
	w.Add("deleted_at IS NULL")
	switch {
	case q.PublishedOnly:
		w.Add("status = ?", string(models.StatusPublished))
	case q.Status != "":
		w.Add("status = ?", string(q.Status))
	}
	if q.Tag != "" {
		tag, err := EncodeTags([]string{q.Tag})
		if err != nil {
			return nil, err
		}
		w.Add("tags @> ?::jsonb", tag)
	}
	return w, nil
}
