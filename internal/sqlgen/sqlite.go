package sqlgen

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/user/watchstore/internal/model"
)

// ExportSQLite writes the schema and records into a SQLite database at
// path. The file is created fresh; exporting over an existing database
// fails on the duplicate rows rather than silently merging.
func ExportSQLite(path string, schema *model.Schema, tables map[string][]model.Record) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(Generate(schema)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range schema.Tables {
		records := tables[t.Name]
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, t, records); err != nil {
			return fmt.Errorf("failed to export table %s: %w", t.Name, err)
		}
	}

	return tx.Commit()
}

// insertRecords bulk-inserts one table's records through a single
// prepared statement. Fields outside the declared columns are dropped;
// the schemaless store tolerates them, SQL does not.
func insertRecords(tx *sql.Tx, t model.Table, records []model.Record) error {
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cols[i] = quote(col.Name)
		marks[i] = "?"
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(t.Name), strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		args := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			v, err := sqlValue(col, rec[col.Name])
			if err != nil {
				return fmt.Errorf("record %s, column %s: %w", rec.ID(), col.Name, err)
			}
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

// sqlValue converts a record field to a driver-friendly value. JSON
// columns are serialized; everything else passes through as stored.
func sqlValue(col model.Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if col.Type == "JSON" {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
	switch t := v.(type) {
	case string, int, int64, float64, bool, []byte:
		return t, nil
	default:
		// Odd types (json.Number, nested maps in a TEXT column) fall
		// back to their JSON form.
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
}
