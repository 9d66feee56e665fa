package daemon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestConfigSynchronizer_ReloadApplies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "grid_columns: 3\n")

	var applied []*config.Config
	s := NewConfigSynchronizer(path, config.DefaultConfig(), zerolog.Nop(), func(cfg *config.Config) {
		applied = append(applied, cfg)
	})
	if err := s.Reload("test"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(applied) != 1 || applied[0].GridColumns != 3 {
		t.Fatalf("unexpected applied configs %+v", applied)
	}
	if s.Current().GridColumns != 3 {
		t.Fatalf("current not updated")
	}
}

func TestConfigSynchronizer_BadFileKeepsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "grid_colums: 3\n")

	start := config.DefaultConfig()
	called := false
	s := NewConfigSynchronizer(path, start, zerolog.Nop(), func(*config.Config) { called = true })
	err := s.Reload("test")
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if called || s.Current() != start {
		t.Fatalf("config should be unchanged")
	}
}

func TestConfigSynchronizer_LogsWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "snap_zone_width: -4\n")

	var buf strings.Builder
	s := NewConfigSynchronizer(path, config.DefaultConfig(), zerolog.New(&buf), func(*config.Config) {})
	if err := s.Reload("test"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if s.Current().SnapZoneWidth != config.DefaultConfig().SnapZoneWidth {
		t.Fatalf("expected fallback, got %d", s.Current().SnapZoneWidth)
	}
	if !strings.Contains(buf.String(), "snap_zone_width") {
		t.Fatalf("expected warning naming the key, got %q", buf.String())
	}
}

func TestApplyDisplayEnv(t *testing.T) {
	env := map[string]string{}
	setenv := func(k, v string) error {
		env[k] = v
		return nil
	}

	if err := applyDisplayEnv(config.DefaultConfig(), setenv); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(env) != 0 {
		t.Fatalf("expected no changes, got %v", env)
	}

	cfg := config.DefaultConfig()
	cfg.Display = ":1"
	cfg.XAuthority = "/tmp/xauth"
	if err := applyDisplayEnv(cfg, setenv); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if env["DISPLAY"] != ":1" || env["XAUTHORITY"] != "/tmp/xauth" {
		t.Fatalf("env = %v", env)
	}
}
