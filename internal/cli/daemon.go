package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/watchstore/internal/daemon"
)

// daemonLogger builds the long-running logger at the configured level.
// Unlike one-shot commands the daemon always logs; --verbose forces
// debug.
func daemonLogger(level string) *zap.Logger {
	if verbose {
		level = "debug"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = lvl
	log, err := logCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the background workers in the foreground",
	Long: `Run the store's background workers until interrupted: a filesystem
watcher that reloads the store when another process rewrites the blob,
and, when auto_backup is enabled, a periodic backup loop.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The daemon only observes; it never writes seed data.
	cfg.Seed = false

	log := daemonLogger(cfg.LogLevel)
	m, err := newManager(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	blobPath := filepath.Join(cfg.DataDir, cfg.SlotName+".json")
	watcher, err := daemon.NewWatcher(blobPath, m.Store().Reload, log)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Close()

	if cfg.AutoBackup {
		backup := daemon.NewAutoBackup(m.Backup, cfg.AutoBackupInterval.Std(), log)
		backup.Start()
		defer backup.Close()
	}

	if !quiet {
		fmt.Printf("Watching %s (auto-backup: %v). Ctrl-C to stop.\n", blobPath, cfg.AutoBackup)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if !quiet {
		fmt.Println("Shutting down")
	}
	return nil
}
