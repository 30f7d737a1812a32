/*
Package config resolves skillhub settings.

Configuration comes from three layers, later ones winning: built-in
defaults, an optional skillhub.yaml in the repo root, and SKILLHUB_*
environment variables (e.g. SKILLHUB_PENDING_REMINDER=10,
SKILLHUB_SERVER_PORT=9000). Paths in the file are interpreted relative to
the repo root.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Target names for the two skill collections.
const (
	TargetSkills       = "skills"
	TargetSkillsCursor = "skills-cursor"
)

// TargetNames lists the recognized promotion targets in display order.
var TargetNames = []string{TargetSkills, TargetSkillsCursor}

// Config is the resolved skillhub configuration.
type Config struct {
	// RootDir is the repository root everything else is relative to.
	RootDir string `mapstructure:"root_dir"`

	// LearningDir holds the entry logs and the action database.
	LearningDir string `mapstructure:"learning_dir"`

	// SkillsDir is the "skills" collection.
	SkillsDir string `mapstructure:"skills_dir"`

	// SkillsCursorDir is the "skills-cursor" collection.
	SkillsCursorDir string `mapstructure:"skills_cursor_dir"`

	// PendingReminder is the pending-entry count at which record prints a
	// review reminder.
	PendingReminder int `mapstructure:"pending_reminder"`

	Server ServerConfig `mapstructure:"server"`
	Sync   SyncConfig   `mapstructure:"sync"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SyncConfig configures skill-collection mirroring.
type SyncConfig struct {
	// Dest is the assistant config directory collections are mirrored
	// into. Empty disables the sync command.
	Dest string `mapstructure:"dest"`

	// Ignore holds doublestar patterns (relative to each collection) that
	// sync leaves alone on both sides.
	Ignore []string `mapstructure:"ignore"`
}

// Load resolves configuration for the repo at rootDir.
func Load(rootDir string) (*Config, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("skillhub")
	v.SetConfigType("yaml")
	v.AddConfigPath(abs)
	v.SetEnvPrefix("SKILLHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("learning_dir", "learning")
	v.SetDefault("skills_dir", filepath.Join("cursor", "skills"))
	v.SetDefault("skills_cursor_dir", filepath.Join("cursor", "skills-cursor"))
	v.SetDefault("pending_reminder", 5)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8765)
	v.SetDefault("sync.dest", "")
	v.SetDefault("sync.ignore", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read skillhub.yaml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.RootDir = abs
	cfg.LearningDir = cfg.resolve(cfg.LearningDir)
	cfg.SkillsDir = cfg.resolve(cfg.SkillsDir)
	cfg.SkillsCursorDir = cfg.resolve(cfg.SkillsCursorDir)
	if cfg.Sync.Dest != "" {
		cfg.Sync.Dest = cfg.resolve(cfg.Sync.Dest)
	}

	if cfg.PendingReminder < 0 {
		return nil, fmt.Errorf("pending_reminder must not be negative")
	}
	return cfg, nil
}

// resolve anchors a possibly-relative path at the repo root.
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.RootDir, path)
}

// Collections maps promotion target names to collection directories.
func (c *Config) Collections() map[string]string {
	return map[string]string{
		TargetSkills:       c.SkillsDir,
		TargetSkillsCursor: c.SkillsCursorDir,
	}
}

// ActionDBPath is the action-log database location.
func (c *Config) ActionDBPath() string {
	return filepath.Join(c.LearningDir, "actions.db")
}

// EnsureLayout creates the learning directories if they are missing.
func (c *Config) EnsureLayout() error {
	for _, dir := range []string{
		filepath.Join(c.LearningDir, "manual"),
		filepath.Join(c.LearningDir, "generated"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
