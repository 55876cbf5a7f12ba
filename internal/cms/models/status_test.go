package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusPublished, StatusArchived} {
		assert.True(t, s.Valid(), s)
	}
	for _, s := range []Status{"", "scheduled", "PUBLISHED"} {
		assert.False(t, s.Valid(), s)
	}
}
