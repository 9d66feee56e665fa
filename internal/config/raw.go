package config

type RawPreview struct {
	Color       *string `yaml:"color"`
	Fill        *string `yaml:"fill"`
	BorderWidth *int    `yaml:"border_width"`
	FadeInMS    *int    `yaml:"fade_in_ms"`
	FadeOutMS   *int    `yaml:"fade_out_ms"`
}

type RawLogging struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// RawConfig mirrors the YAML document. Nil pointers mean "not set" and
// take the default.
type RawConfig struct {
	Display            *string     `yaml:"display"`
	XAuthority         *string     `yaml:"xauthority"`
	SnapZoneWidth      *int        `yaml:"snap_zone_width"`
	GridColumns        *int        `yaml:"grid_columns"`
	GridRows           *int        `yaml:"grid_rows"`
	MinSnapWidth       *int        `yaml:"min_snap_width"`
	MinSnapHeight      *int        `yaml:"min_snap_height"`
	VirtualCorners     *bool       `yaml:"virtual_corners"`
	IntelligentSpacing *bool       `yaml:"intelligent_spacing"`
	ArmDelayMS         *int        `yaml:"arm_delay_ms"`
	PollIntervalMS     *int        `yaml:"poll_interval_ms"`
	Preview            *RawPreview `yaml:"preview"`
	Logging            *RawLogging `yaml:"logging"`
}
