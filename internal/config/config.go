package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/1broseidon/snaptile/internal/tiling"
	"gopkg.in/yaml.v3"
)

// Preview style fallbacks.
const (
	DefaultPreviewColor = "rgba(0, 150, 255, 0.8)"
	DefaultPreviewFill  = "rgba(0, 150, 255, 0.2)"
)

// MaxGridDimension caps grid_columns and grid_rows.
const MaxGridDimension = 16

// PreviewConfig controls the snap preview overlay.
type PreviewConfig struct {
	// Color is the border colour as rgba(), rgb() or #hex.
	Color string `yaml:"color"`
	// Fill is the interior colour in the same formats as Color.
	Fill        string `yaml:"fill"`
	BorderWidth int    `yaml:"border_width"`
	FadeInMS    int    `yaml:"fade_in_ms"`
	FadeOutMS   int    `yaml:"fade_out_ms"`
}

// LoggingConfig configures daemon logging.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level"`
	// File additionally writes JSON logs to this path when set.
	File string `yaml:"file,omitempty"`
}

// Config is the effective snaptile configuration.
type Config struct {
	Display            string        `yaml:"display,omitempty"`
	XAuthority         string        `yaml:"xauthority,omitempty"`
	SnapZoneWidth      int           `yaml:"snap_zone_width"`
	GridColumns        int           `yaml:"grid_columns"`
	GridRows           int           `yaml:"grid_rows"`
	MinSnapWidth       int           `yaml:"min_snap_width"`
	MinSnapHeight      int           `yaml:"min_snap_height"`
	VirtualCorners     bool          `yaml:"virtual_corners"`
	IntelligentSpacing bool          `yaml:"intelligent_spacing"`
	ArmDelayMS         int           `yaml:"arm_delay_ms"`
	PollIntervalMS     int           `yaml:"poll_interval_ms"`
	Preview            PreviewConfig `yaml:"preview"`
	Logging            LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		SnapZoneWidth:  tiling.DefaultThreshold,
		GridColumns:    tiling.DefaultColumns,
		GridRows:       tiling.DefaultRows,
		MinSnapWidth:   tiling.DefaultMinWidth,
		MinSnapHeight:  tiling.DefaultMinHeight,
		ArmDelayMS:     500,
		PollIntervalMS: 16,
		Preview: PreviewConfig{
			Color:       DefaultPreviewColor,
			Fill:        DefaultPreviewFill,
			BorderWidth: 2,
			FadeInMS:    150,
			FadeOutMS:   100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns ~/.config/snaptile/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "snaptile", "config.yaml"), nil
}

// SnapOptions converts the configuration into locator options.
func (c *Config) SnapOptions() tiling.Options {
	return tiling.Options{
		Threshold:          c.SnapZoneWidth,
		Columns:            c.GridColumns,
		Rows:               c.GridRows,
		MinWidth:           c.MinSnapWidth,
		MinHeight:          c.MinSnapHeight,
		VirtualCorners:     c.VirtualCorners,
		IntelligentSpacing: c.IntelligentSpacing,
	}.Normalized()
}

// ArmDelay is how long a drag must last before snapping is evaluated.
func (c *Config) ArmDelay() time.Duration {
	return time.Duration(c.ArmDelayMS) * time.Millisecond
}

// PollInterval is the drag tracker sampling period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// FadeIn is the preview fade-in duration.
func (c *Config) FadeIn() time.Duration {
	return time.Duration(c.Preview.FadeInMS) * time.Millisecond
}

// FadeOut is the preview fade-out duration.
func (c *Config) FadeOut() time.Duration {
	return time.Duration(c.Preview.FadeOutMS) * time.Millisecond
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	if c.GridColumns > MaxGridDimension {
		return &ValidationError{Path: "grid_columns", Err: fmt.Errorf("grid_columns must be <= %d", MaxGridDimension)}
	}
	if c.GridRows > MaxGridDimension {
		return &ValidationError{Path: "grid_rows", Err: fmt.Errorf("grid_rows must be <= %d", MaxGridDimension)}
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
