package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/watchstore/internal/model"
	"github.com/user/watchstore/internal/sqlgen"
)

var sqlgenCmd = &cobra.Command{
	Use:   "sqlgen",
	Short: "Print the storefront schema as SQLite DDL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(sqlgen.Generate(model.DefaultSchema()))
		return nil
	},
}

var exportSQLiteCmd = &cobra.Command{
	Use:   "export-sqlite <file>",
	Short: "Export the store into a SQLite database file",
	Long: `Export every table into a SQLite database for inspection with
external tools. The target file must not already contain an export;
fields outside the declared schema are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportSQLite,
}

func init() {
	rootCmd.AddCommand(sqlgenCmd)
	rootCmd.AddCommand(exportSQLiteCmd)
}

func runExportSQLite(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	schema := model.DefaultSchema()
	tables := make(map[string][]model.Record, len(schema.Tables))
	for _, name := range schema.TableNames() {
		records, err := m.Find(name, model.Query{})
		if err != nil {
			return err
		}
		tables[name] = records
	}

	if err := sqlgen.ExportSQLite(args[0], schema, tables); err != nil {
		return err
	}

	info, _ := os.Stat(args[0])
	if jsonOutput {
		out := map[string]any{"file": args[0]}
		if info != nil {
			out["size_bytes"] = info.Size()
		}
		printJSON(out)
	} else if !quiet {
		if info != nil {
			fmt.Printf("Exported %s (%s)\n", args[0], formatBytes(info.Size()))
		} else {
			fmt.Printf("Exported %s\n", args[0])
		}
	}
	return nil
}
