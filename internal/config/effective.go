package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Warning reports a value that was replaced by its fallback.
type Warning struct {
	Path    string
	Message string
	Source  Source
}

func (w Warning) String() string {
	if w.Source.Kind == SourceFile && w.Source.File != "" && w.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", w.Source.File, w.Source.Line, w.Source.Column, w.Path, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// BuildEffectiveConfig layers raw over the defaults. Out-of-range values do
// not fail the build: they fall back to the default and produce a warning.
func BuildEffectiveConfig(raw RawConfig) (*Config, []Warning, error) {
	cfg := DefaultConfig()
	def := DefaultConfig()
	var warnings []Warning

	positive := func(path string, p *int, dst *int, fallback int) {
		if p == nil {
			return
		}
		if *p <= 0 {
			warnings = append(warnings, Warning{Path: path, Message: fmt.Sprintf("must be > 0, got %d; using %d", *p, fallback)})
			*dst = fallback
			return
		}
		*dst = *p
	}
	nonNegative := func(path string, p *int, dst *int, fallback int) {
		if p == nil {
			return
		}
		if *p < 0 {
			warnings = append(warnings, Warning{Path: path, Message: fmt.Sprintf("must be >= 0, got %d; using %d", *p, fallback)})
			*dst = fallback
			return
		}
		*dst = *p
	}

	if raw.Display != nil {
		cfg.Display = strings.TrimSpace(*raw.Display)
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = strings.TrimSpace(*raw.XAuthority)
	}

	positive("snap_zone_width", raw.SnapZoneWidth, &cfg.SnapZoneWidth, def.SnapZoneWidth)
	positive("grid_columns", raw.GridColumns, &cfg.GridColumns, def.GridColumns)
	positive("grid_rows", raw.GridRows, &cfg.GridRows, def.GridRows)
	positive("min_snap_width", raw.MinSnapWidth, &cfg.MinSnapWidth, def.MinSnapWidth)
	positive("min_snap_height", raw.MinSnapHeight, &cfg.MinSnapHeight, def.MinSnapHeight)
	nonNegative("arm_delay_ms", raw.ArmDelayMS, &cfg.ArmDelayMS, def.ArmDelayMS)
	positive("poll_interval_ms", raw.PollIntervalMS, &cfg.PollIntervalMS, def.PollIntervalMS)

	if raw.VirtualCorners != nil {
		cfg.VirtualCorners = *raw.VirtualCorners
	}
	if raw.IntelligentSpacing != nil {
		cfg.IntelligentSpacing = *raw.IntelligentSpacing
	}

	if p := raw.Preview; p != nil {
		if p.Color != nil {
			cfg.Preview.Color = colorOrDefault("preview.color", *p.Color, def.Preview.Color, &warnings)
		}
		if p.Fill != nil {
			cfg.Preview.Fill = colorOrDefault("preview.fill", *p.Fill, def.Preview.Fill, &warnings)
		}
		nonNegative("preview.border_width", p.BorderWidth, &cfg.Preview.BorderWidth, def.Preview.BorderWidth)
		nonNegative("preview.fade_in_ms", p.FadeInMS, &cfg.Preview.FadeInMS, def.Preview.FadeInMS)
		nonNegative("preview.fade_out_ms", p.FadeOutMS, &cfg.Preview.FadeOutMS, def.Preview.FadeOutMS)
	}

	if l := raw.Logging; l != nil {
		if l.Level != nil {
			level := strings.ToLower(strings.TrimSpace(*l.Level))
			if level == "warning" {
				level = "warn"
			}
			cfg.Logging.Level = level
		}
		if l.File != nil {
			cfg.Logging.File = strings.TrimSpace(*l.File)
		}
	}

	return cfg, warnings, nil
}

func colorOrDefault(path, value, fallback string, warnings *[]Warning) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if _, err := ParseColor(value); err != nil {
		*warnings = append(*warnings, Warning{Path: path, Message: fmt.Sprintf("%v; using %s", err, fallback)})
		return fallback
	}
	return value
}
