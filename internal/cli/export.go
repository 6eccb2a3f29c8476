package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the store blob to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the store with a blob from a file",
	Long: `Replace the live store with the blob in the given file. Both plain
and gzip-compressed blobs are accepted. An unparsable blob leaves the
store untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	data, err := m.Export()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if !quiet && !jsonOutput {
		fmt.Printf("Exported %s (%s)\n", args[0], formatBytes(int64(len(data))))
	}
	if jsonOutput {
		printJSON(map[string]any{"file": args[0], "size_bytes": len(data)})
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Import(data); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{"imported": args[0]})
	} else if !quiet {
		fmt.Printf("Imported %s\n", args[0])
	}
	return nil
}
