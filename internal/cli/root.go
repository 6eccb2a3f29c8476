// Package cli provides the command-line interface for watchstore.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/watchstore/internal/config"
	"github.com/user/watchstore/internal/manager"
)

// Global flags
var (
	jsonOutput bool
	configPath string
	dataDir    string
	quiet      bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "watchstore",
	Short: "A file-backed document store for the watchstore storefront",
	Long: `Watchstore manages the storefront's record store: a single JSON
blob holding users, products, categories, orders, carts, and the rest
of the shop's tables.

Features:
  - Condition queries with sorting, pagination, and field projection
  - Timestamped backups with retention and optional gzip compression
  - Advisory unique indexes with violation reporting
  - First-run seeding from a bundled or custom catalog
  - SQLite export for inspection with external tools`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: watchstore.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug output")
}

// ExitCode is used to communicate exit codes for testing
var ExitCode int

// ExitFunc is the function called to exit the program
// Can be overridden for testing
var ExitFunc = os.Exit

// Exit sets the exit code and calls the exit function
func Exit(code int) {
	ExitCode = code
	ExitFunc(code)
}

// DefaultConfigFile is picked up from the working directory when
// --config is not given.
const DefaultConfigFile = "watchstore.yaml"

// loadConfig resolves the effective configuration: file (when present)
// overlaid with command-line overrides.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// buildLogger returns the CLI logger: debug-level development output
// with --verbose, silence otherwise. Command output goes to stdout
// directly, not through the logger.
func buildLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openManager builds a connected Manager from the effective config.
// Callers must Close it.
func openManager() (*manager.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newManager(cfg)
}

// newManager connects a Manager for an already-resolved config.
func newManager(cfg config.Config) (*manager.Manager, error) {
	return manager.New(cfg, buildLogger())
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
