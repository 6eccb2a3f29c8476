// Package config loads the store configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultSlotName           = "watch_store"
	DefaultDataDir            = ".watchstore"
	DefaultBackupMax          = 5
	DefaultAutoBackupInterval = Duration(15 * time.Minute)
)

// Duration wraps time.Duration so YAML values like "15m" parse.
// Bare integers are taken as seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var secs int64
	if err := value.Decode(&secs); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(time.Duration(secs) * time.Second)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds every tunable of the store and its daemon.
type Config struct {
	// SlotName is the base slot the store blob lives under.
	SlotName string `yaml:"slot_name"`
	// DataDir is the directory holding slot files.
	DataDir string `yaml:"data_dir"`
	// AutoBackup enables the periodic backup loop.
	AutoBackup bool `yaml:"auto_backup"`
	// AutoBackupInterval is the period between automatic backups.
	AutoBackupInterval Duration `yaml:"auto_backup_interval"`
	// BackupMax caps retained backup snapshots; oldest pruned first.
	BackupMax int `yaml:"backup_max"`
	// CompressBackups gzips backup blobs.
	CompressBackups bool `yaml:"compress_backups"`
	// Seed enables first-run seeding when the core tables are empty.
	Seed bool `yaml:"seed"`
	// SeedPath overrides the bundled seed document.
	SeedPath string `yaml:"seed_path"`
	// LogLevel is a zap level string: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		SlotName:           DefaultSlotName,
		DataDir:            DefaultDataDir,
		AutoBackup:         true,
		AutoBackupInterval: DefaultAutoBackupInterval,
		BackupMax:          DefaultBackupMax,
		Seed:               true,
		LogLevel:           "info",
	}
}

// Load reads a YAML config file over the defaults. A missing path (or
// an empty path argument) returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg.normalize(), nil
}

// normalize backfills zero values a partial file may have left.
func (c Config) normalize() Config {
	if c.SlotName == "" {
		c.SlotName = DefaultSlotName
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.AutoBackupInterval <= 0 {
		c.AutoBackupInterval = DefaultAutoBackupInterval
	}
	if c.BackupMax <= 0 {
		c.BackupMax = DefaultBackupMax
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}
