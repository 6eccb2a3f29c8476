package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("has timestamp and suffix", func(t *testing.T) {
		id := NewID()
		parts := strings.SplitN(id, "-", 2)
		require.Len(t, parts, 2)
		assert.Len(t, parts[1], IDSuffixLength)
		assert.NoError(t, ValidateID(id))
	})

	t.Run("uses the given time", func(t *testing.T) {
		at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		id := NewIDAt(at)
		assert.True(t, strings.HasPrefix(id, "1787918400000-"), id)
	})

	t.Run("unique across many calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewID()
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("1756382400000-k3x9qf"))
	assert.ErrorIs(t, ValidateID("not-an-id"), ErrInvalidID)
	assert.ErrorIs(t, ValidateID(""), ErrInvalidID)
	assert.ErrorIs(t, ValidateID("1756382400000-TOOBIG"), ErrInvalidID)
}
