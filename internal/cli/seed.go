package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate an empty store with the starter catalog",
	Long: `Seed the store with the bundled starter catalog, or with --file, a
custom seed document. Seeding only runs when the users, categories,
and products tables are all empty; otherwise it reports skipped.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Seed document to use instead of the bundled catalog")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The command seeds explicitly; do not let construction race it.
	cfg.Seed = false
	if seedFile != "" {
		cfg.SeedPath = seedFile
	}

	m, err := newManager(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	counts, err := m.SeedIfEmpty()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{
			"skipped":    counts.Skipped,
			"categories": counts.Categories,
			"products":   counts.Products,
			"users":      counts.Users,
		})
		return nil
	}
	if counts.Skipped {
		if !quiet {
			fmt.Println("Store already has data; seeding skipped")
		}
		return nil
	}
	if !quiet {
		fmt.Printf("Seeded %d categories, %d products, %d users\n",
			counts.Categories, counts.Products, counts.Users)
	}
	return nil
}
