package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a timestamped backup snapshot",
	Long: `Snapshot the current store under a timestamp-suffixed slot name.
Snapshots beyond the retention cap are pruned, oldest first.`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backup snapshots, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runBackups,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <backup>",
	Short: "Replace the store with a backup snapshot",
	Long: `Replace the live store with the named snapshot's contents. The name
must be one reported by 'watchstore backups'. The restored state is
persisted immediately; the current data is not snapshotted first, so
consider running 'watchstore backup' before restoring.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	name, err := m.Backup()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{"backup": name})
	} else if !quiet {
		fmt.Printf("Backup created: %s\n", name)
	}
	return nil
}

func runBackups(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{"backups": backups})
		return nil
	}
	if len(backups) == 0 {
		if !quiet {
			fmt.Println("No backups")
		}
		return nil
	}
	for _, name := range backups {
		fmt.Println(name)
	}
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Restore(args[0]); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{"restored": args[0]})
	} else if !quiet {
		fmt.Printf("Restored from %s\n", args[0])
	}
	return nil
}
