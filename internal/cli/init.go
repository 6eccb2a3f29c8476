package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initNoSeed bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the store and seed the starter catalog",
	Long: `Initialize the data directory: write an empty store blob shaped by
the storefront schema and, unless --no-seed is given, populate the
starter catalog of categories, products, and a demo account.

Running init against an existing store is safe; seeding only happens
when the core tables are empty.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initNoSeed, "no-seed", false, "Skip first-run seeding")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if initNoSeed {
		cfg.Seed = false
	}

	m, err := newManager(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	stats, err := m.GetStats()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{
			"data_dir":      cfg.DataDir,
			"slot":          cfg.SlotName,
			"total_records": stats.TotalRecords,
		})
	} else if !quiet {
		fmt.Printf("Store initialized in %s\n", cfg.DataDir)
		fmt.Printf("Records: %d\n", stats.TotalRecords)
	}
	return nil
}
