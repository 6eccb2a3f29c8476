package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts and storage usage",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	stats, err := m.GetStats()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(stats)
		return nil
	}

	tables := make([]string, 0, len(stats.Tables))
	for name := range stats.Tables {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	for _, name := range tables {
		fmt.Printf("%-16s %d\n", name, stats.Tables[name])
	}
	fmt.Printf("\nTotal records: %d\n", stats.TotalRecords)
	fmt.Printf("Store size: %s (%.1f%% of capacity)\n",
		formatBytes(stats.Usage.UsedBytes), stats.Usage.UsedPercent)
	fmt.Printf("Backups: %d (%s)\n", stats.Usage.Backups, formatBytes(stats.Usage.BackupBytes))
	if stats.IndexViolations > 0 {
		fmt.Printf("Index violations: %d (see doctor)\n", stats.IndexViolations)
	}
	return nil
}

// formatBytes formats bytes as human-readable size.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
