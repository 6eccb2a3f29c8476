// Package sqlgen turns the storefront schema into SQLite DDL and can
// export a live store into a .db file for inspection with external
// tools. The store itself never executes SQL; this is a debug surface.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/user/watchstore/internal/model"
)

// quote wraps an identifier in double quotes. Column names like "group"
// collide with SQL keywords otherwise.
func quote(ident string) string {
	return `"` + ident + `"`
}

// CreateTableSQL returns the CREATE TABLE statement for one table. The
// id column becomes the primary key.
func CreateTableSQL(t model.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", quote(t.Name))
	for i, col := range t.Columns {
		b.WriteString("  ")
		b.WriteString(quote(col.Name))
		b.WriteString(" ")
		b.WriteString(col.Type)
		if col.Name == model.FieldID {
			b.WriteString(" PRIMARY KEY")
		}
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String()
}

// CreateIndexSQL returns the CREATE INDEX statement for one index
// declaration.
func CreateIndexSQL(idx model.IndexDef) string {
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	fields := make([]string, len(idx.Fields))
	for i, f := range idx.Fields {
		fields[i] = quote(f)
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s);",
		unique, quote(idx.Name), quote(idx.Table), strings.Join(fields, ", "))
}

// Generate returns the full DDL script for a schema: every table in
// declaration order, then every index.
func Generate(s *model.Schema) string {
	var b strings.Builder
	for i, t := range s.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(CreateTableSQL(t))
		b.WriteString("\n")
	}
	for _, idx := range s.Indexes {
		b.WriteString("\n")
		b.WriteString(CreateIndexSQL(idx))
		b.WriteString("\n")
	}
	return b.String()
}
