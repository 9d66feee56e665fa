package config

import (
	"fmt"
	"strings"
)

// Paths lists every key accepted by Explain, in document order.
var Paths = []string{
	"display",
	"xauthority",
	"snap_zone_width",
	"grid_columns",
	"grid_rows",
	"min_snap_width",
	"min_snap_height",
	"virtual_corners",
	"intelligent_spacing",
	"arm_delay_ms",
	"poll_interval_ms",
	"preview.color",
	"preview.fill",
	"preview.border_width",
	"preview.fade_in_ms",
	"preview.fade_out_ms",
	"logging.level",
	"logging.file",
}

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths are listed in Paths; "preview" and "logging" return the
// whole section.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok && !fellBack(res.Warnings, path) {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

// fellBack reports whether path was set in a file but replaced by its default.
func fellBack(warnings []Warning, path string) bool {
	for _, w := range warnings {
		if w.Path == path {
			return true
		}
	}
	return false
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	if len(parts) == 2 {
		switch parts[0] {
		case "preview":
			switch parts[1] {
			case "color":
				return cfg.Preview.Color, nil
			case "fill":
				return cfg.Preview.Fill, nil
			case "border_width":
				return cfg.Preview.BorderWidth, nil
			case "fade_in_ms":
				return cfg.Preview.FadeInMS, nil
			case "fade_out_ms":
				return cfg.Preview.FadeOutMS, nil
			}
		case "logging":
			switch parts[1] {
			case "level":
				return cfg.Logging.Level, nil
			case "file":
				return cfg.Logging.File, nil
			}
		}
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch path {
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	case "snap_zone_width":
		return cfg.SnapZoneWidth, nil
	case "grid_columns":
		return cfg.GridColumns, nil
	case "grid_rows":
		return cfg.GridRows, nil
	case "min_snap_width":
		return cfg.MinSnapWidth, nil
	case "min_snap_height":
		return cfg.MinSnapHeight, nil
	case "virtual_corners":
		return cfg.VirtualCorners, nil
	case "intelligent_spacing":
		return cfg.IntelligentSpacing, nil
	case "arm_delay_ms":
		return cfg.ArmDelayMS, nil
	case "poll_interval_ms":
		return cfg.PollIntervalMS, nil
	case "preview":
		return cfg.Preview, nil
	case "logging":
		return cfg.Logging, nil
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}
