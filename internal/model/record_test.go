package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Accessors(t *testing.T) {
	rec := Record{"id": "a-1", "name": "Meridian GMT", "price": 1450.0}

	assert.Equal(t, "a-1", rec.ID())
	assert.Equal(t, "Meridian GMT", rec.String("name"))
	assert.Equal(t, "", rec.String("price"), "non-string field reads as empty string")

	v, ok := rec.Get("price")
	require.True(t, ok)
	assert.Equal(t, 1450.0, v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestRecord_Clone(t *testing.T) {
	rec := Record{"id": "a-1", "name": "Meridian GMT"}
	cp := rec.Clone()

	cp["name"] = "changed"
	assert.Equal(t, "Meridian GMT", rec["name"], "clone must not alias the original")
}

func TestRecord_Merge(t *testing.T) {
	rec := Record{"id": "a-1", "status": "pending", "total": 100.0}
	out := rec.Merge(Record{"status": "paid", "paid_at": "2026-01-01T00:00:00.000Z"})

	assert.Equal(t, "paid", out["status"])
	assert.Equal(t, 100.0, out["total"])
	assert.Equal(t, "pending", rec["status"], "merge must not mutate the receiver")
}

func TestRecord_Project(t *testing.T) {
	rec := Record{"id": "a-1", "name": "Meridian GMT", "price": 1450.0}
	out := rec.Project([]string{"id", "price", "missing"})

	assert.Equal(t, Record{"id": "a-1", "price": 1450.0}, out)
	assert.NotContains(t, out, "name", "unlisted fields are dropped")
}

func TestFormatTime(t *testing.T) {
	at := time.Date(2026, 8, 28, 12, 30, 45, 123_000_000, time.FixedZone("CET", 3600))
	assert.Equal(t, "2026-08-28T11:30:45.123Z", FormatTime(at))
}
