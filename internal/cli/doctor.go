package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check store health and report index violations",
	Long: `Run a health check: verify the store connects and reads, report
storage usage against the capacity ceiling, and list any unique-index
violations found when indexes were rebuilt. Violations are advisory;
the offending records stay in the store.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	health := m.HealthCheck()
	usage, usageErr := m.Store().Usage()
	violations := m.Store().Violations()

	if jsonOutput {
		out := map[string]any{
			"health":     health,
			"violations": violations,
		}
		if usageErr == nil {
			out["usage"] = usage
		}
		printJSON(out)
		if health.Status != "ok" || len(violations) > 0 {
			Exit(1)
		}
		return nil
	}

	fmt.Printf("Health: %s\n", health.Status)
	if health.Error != "" {
		fmt.Printf("Error: %s\n", health.Error)
	}
	if usageErr == nil {
		fmt.Printf("Storage: %s used (%.1f%% of capacity), %d backup(s)\n",
			formatBytes(usage.UsedBytes), usage.UsedPercent, usage.Backups)
	}

	if len(violations) == 0 {
		fmt.Println("Indexes: no violations")
	} else {
		fmt.Printf("Indexes: %d violation(s)\n", len(violations))
		for _, v := range violations {
			fmt.Printf("  %s (%s): key [%s] duplicated by record %s (first: %s)\n",
				v.Index, v.Table, v.Key, v.RecordID, v.ExistingID)
		}
	}

	if health.Status != "ok" || len(violations) > 0 {
		Exit(1)
	}
	return nil
}
