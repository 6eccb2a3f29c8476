package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/watchstore/internal/model"
)

func TestEncodeBlob(t *testing.T) {
	schema := &model.Schema{Tables: []model.Table{
		{Name: "products"},
		{Name: "users"},
	}}
	tables := map[string][]model.Record{
		"products": {{"id": "p1", "name": "Meridian GMT"}},
	}

	data, err := EncodeBlob(schema, tables)
	require.NoError(t, err)

	t.Run("missing schema tables encode as empty arrays", func(t *testing.T) {
		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.JSONEq(t, `[]`, string(doc["users"]))
	})

	t.Run("schema order is preserved", func(t *testing.T) {
		assert.Regexp(t, `^\{"products":.*"users":`, string(data))
	})

	t.Run("extra tables are carried after schema tables", func(t *testing.T) {
		tables["zz_legacy"] = []model.Record{{"id": "x"}}
		data, err := EncodeBlob(schema, tables)
		require.NoError(t, err)

		decoded, err := DecodeBlob(data)
		require.NoError(t, err)
		assert.Len(t, decoded["zz_legacy"], 1)
	})
}

func TestDecodeBlob(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		schema := &model.Schema{Tables: []model.Table{{Name: "products"}}}
		in := map[string][]model.Record{
			"products": {{"id": "p1", "price": 1450.0, "tags": []any{"gmt"}}},
		}
		data, err := EncodeBlob(schema, in)
		require.NoError(t, err)

		out, err := DecodeBlob(data)
		require.NoError(t, err)
		assert.Equal(t, in["products"], out["products"])
	})

	t.Run("corrupt content", func(t *testing.T) {
		for _, blob := range []string{"", "null", "[1,2]", "{broken"} {
			_, err := DecodeBlob([]byte(blob))
			assert.ErrorIs(t, err, model.ErrCorruptBlob, "blob %q", blob)
		}
	})

	t.Run("null table normalizes to empty", func(t *testing.T) {
		out, err := DecodeBlob([]byte(`{"products":null}`))
		require.NoError(t, err)
		assert.NotNil(t, out["products"])
		assert.Empty(t, out["products"])
	})

	t.Run("gzip framing is transparent", func(t *testing.T) {
		zipped, err := Gzip([]byte(`{"products":[{"id":"p1"}]}`))
		require.NoError(t, err)

		out, err := DecodeBlob(zipped)
		require.NoError(t, err)
		assert.Len(t, out["products"], 1)
	})

	t.Run("truncated gzip is corrupt", func(t *testing.T) {
		zipped, err := Gzip([]byte(`{}`))
		require.NoError(t, err)
		_, err = DecodeBlob(zipped[:4])
		assert.ErrorIs(t, err, model.ErrCorruptBlob)
	})
}
