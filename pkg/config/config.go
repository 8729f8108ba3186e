// Package config loads configuration for the hostmerge CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "hostmerge.toml"
	configEnvVar      = "HOSTMERGE_CONFIG"
)

// Config contains all runtime options. It is constructed once at startup and
// passed to each component; nothing reads configuration ambiently.
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Backup  BackupConfig  `mapstructure:"backup"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PathsConfig names every file and directory the pipeline touches.
type PathsConfig struct {
	SourcesDir  string `mapstructure:"sources_dir"`
	SourceList  string `mapstructure:"source_list"`
	BackupDir   string `mapstructure:"backup_dir"`
	Whitelist   string `mapstructure:"whitelist"`
	TrimRules   string `mapstructure:"trim_rules"`
	Combined    string `mapstructure:"combined"`
	CombinedAll string `mapstructure:"combined_all"`
}

// BackupConfig holds fetch settings for the backup mode.
type BackupConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"-"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ValidateLogLevel ensures the user-provided log level matches the supported
// set.
func ValidateLogLevel(level string) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(level)] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", level)
	}
	return nil
}

// Setup loads the TOML configuration file and produces a Config instance.
// Precedence for the file location: the explicit path argument, then
// HOSTMERGE_CONFIG, then ./hostmerge.toml. A missing default file falls back
// to built-in defaults; a missing explicit file is an error.
func Setup(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		if fromEnv := strings.TrimSpace(os.Getenv(configEnvVar)); fromEnv != "" {
			configPath = fromEnv
			explicit = true
		} else {
			configPath = defaultConfigPath
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix("HOSTMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	timeout, err := parseDuration(v.GetString("backup.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid backup.timeout: %w", err)
	}
	cfg.Backup.Timeout = timeout

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("paths.sources_dir", "sources")
	v.SetDefault("paths.source_list", filepath.Join("backup", "sources.txt"))
	v.SetDefault("paths.backup_dir", filepath.Join("backup", "snapshots"))
	v.SetDefault("paths.whitelist", "whitelist")
	v.SetDefault("paths.trim_rules", "")
	v.SetDefault("paths.combined", "combined_hosts")
	v.SetDefault("paths.combined_all", "combined_hosts_all")
	v.SetDefault("backup.user_agent", "")
	v.SetDefault("backup.timeout", "20s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "stdout")
}

func parseDuration(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}

func validateConfig(cfg *Config) error {
	if err := ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	if cfg.Paths.SourcesDir == "" {
		return errors.New("paths.sources_dir is required")
	}
	if cfg.Paths.SourceList == "" {
		return errors.New("paths.source_list is required")
	}
	if cfg.Paths.BackupDir == "" {
		return errors.New("paths.backup_dir is required")
	}
	if cfg.Paths.Whitelist == "" {
		return errors.New("paths.whitelist is required")
	}
	if cfg.Paths.Combined == "" || cfg.Paths.CombinedAll == "" {
		return errors.New("paths.combined and paths.combined_all are required")
	}

	if cfg.Backup.Timeout < 0 {
		return errors.New("backup.timeout must not be negative")
	}

	return nil
}
