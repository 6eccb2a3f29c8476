package sqlgen

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/user/watchstore/internal/model"
)

func TestCreateTableSQL(t *testing.T) {
	table := model.Table{Name: "settings", Columns: []model.Column{
		{Name: "id", Type: "TEXT"},
		{Name: "key", Type: "TEXT"},
		{Name: "value", Type: "JSON"},
	}}

	want := `CREATE TABLE IF NOT EXISTS "settings" (
  "id" TEXT PRIMARY KEY,
  "key" TEXT,
  "value" JSON
);`
	assert.Equal(t, want, CreateTableSQL(table))
}

func TestCreateIndexSQL(t *testing.T) {
	t.Run("unique single field", func(t *testing.T) {
		sql := CreateIndexSQL(model.IndexDef{
			Name: "idx_users_email", Table: "users",
			Fields: []string{"email"}, Unique: true,
		})
		assert.Equal(t,
			`CREATE UNIQUE INDEX IF NOT EXISTS "idx_users_email" ON "users" ("email");`,
			sql)
	})

	t.Run("composite non-unique", func(t *testing.T) {
		sql := CreateIndexSQL(model.IndexDef{
			Name: "idx_cart_owner_product", Table: "cart_items",
			Fields: []string{"user_id", "session_id", "product_id"},
		})
		assert.Equal(t,
			`CREATE INDEX IF NOT EXISTS "idx_cart_owner_product" ON "cart_items" ("user_id", "session_id", "product_id");`,
			sql)
	})
}

// The full storefront DDL is pinned as a golden file; schema changes
// show up as a reviewable diff (`go test ./internal/sqlgen -update`).
func TestGenerate_DefaultSchema(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "default_schema", []byte(Generate(model.DefaultSchema())))
}
