package sqlgen

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/watchstore/internal/model"
)

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	schema := model.DefaultSchema()

	tables := map[string][]model.Record{
		model.TableProducts: {
			{"id": "p1", "sku": "WS-AD-300", "name": "Atlas Diver 300", "price": 980.0,
				"tags": []any{"dive", "steel"}, "is_featured": true, "stock": 24},
			{"id": "p2", "sku": "WS-MG-24", "name": "Meridian GMT", "price": 1450.0},
		},
		model.TableSettings: {
			{"id": "s1", "key": "currency", "value": "EUR"},
		},
	}

	require.NoError(t, ExportSQLite(path, schema, tables))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "products"`).Scan(&n))
	assert.Equal(t, 2, n)

	t.Run("scalar fields survive", func(t *testing.T) {
		var name string
		var price float64
		require.NoError(t, db.QueryRow(
			`SELECT "name", "price" FROM "products" WHERE "sku" = ?`, "WS-AD-300").
			Scan(&name, &price))
		assert.Equal(t, "Atlas Diver 300", name)
		assert.Equal(t, 980.0, price)
	})

	t.Run("json columns are serialized", func(t *testing.T) {
		var tags string
		require.NoError(t, db.QueryRow(
			`SELECT "tags" FROM "products" WHERE "id" = ?`, "p1").Scan(&tags))
		assert.JSONEq(t, `["dive","steel"]`, tags)
	})

	t.Run("undeclared fields are dropped, missing fields are null", func(t *testing.T) {
		var sale sql.NullFloat64
		require.NoError(t, db.QueryRow(
			`SELECT "sale_price" FROM "products" WHERE "id" = ?`, "p1").Scan(&sale))
		assert.False(t, sale.Valid)
	})

	t.Run("declared indexes exist", func(t *testing.T) {
		var n int
		require.NoError(t, db.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_products_sku'`).
			Scan(&n))
		assert.Equal(t, 1, n)
	})
}
