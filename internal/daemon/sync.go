package daemon

import (
	"fmt"
	"sync"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/rs/zerolog"
)

// ConfigSynchronizer reloads the configuration file and hands each good
// result to apply. A file that fails to load leaves the current
// configuration in place.
type ConfigSynchronizer struct {
	path  string
	apply func(*config.Config)
	log   zerolog.Logger

	mu      sync.Mutex
	current *config.Config
}

// NewConfigSynchronizer creates a synchronizer for path starting from cfg.
func NewConfigSynchronizer(path string, cfg *config.Config, logger zerolog.Logger, apply func(*config.Config)) *ConfigSynchronizer {
	return &ConfigSynchronizer{
		path:    path,
		apply:   apply,
		log:     logger.With().Str("component", "config").Logger(),
		current: cfg,
	}
}

// Current returns the configuration most recently applied.
func (s *ConfigSynchronizer) Current() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reload loads the file and applies it. reason is only logged.
func (s *ConfigSynchronizer) Reload(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := config.LoadFromPath(s.path)
	if err != nil {
		s.log.Error().Err(err).Str("reason", reason).Msg("config reload failed, keeping previous config")
		return err
	}
	logWarnings(s.log, res.Warnings)

	if res.Config.Logging != s.current.Logging {
		s.log.Warn().Msg("logging changes take effect after a restart")
	}
	if res.Config.Display != s.current.Display || res.Config.XAuthority != s.current.XAuthority {
		s.log.Warn().Msg("display changes take effect after a restart")
	}

	s.current = res.Config
	s.apply(res.Config)
	s.log.Info().Str("reason", reason).Str("path", s.path).Msg("config reloaded")
	return nil
}

func logWarnings(log zerolog.Logger, warnings []config.Warning) {
	for _, w := range warnings {
		log.Warn().Str("key", w.Path).Msg(w.String())
	}
}

// applyDisplayEnv exports the display and xauthority settings so the X11
// connection picks them up.
func applyDisplayEnv(cfg *config.Config, setenv func(key, value string) error) error {
	if cfg.Display != "" {
		if err := setenv("DISPLAY", cfg.Display); err != nil {
			return fmt.Errorf("set DISPLAY: %w", err)
		}
	}
	if cfg.XAuthority != "" {
		if err := setenv("XAUTHORITY", cfg.XAuthority); err != nil {
			return fmt.Errorf("set XAUTHORITY: %w", err)
		}
	}
	return nil
}
