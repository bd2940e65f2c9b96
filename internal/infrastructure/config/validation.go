package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/dockyard/internal/domain/overlay"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "off"}
	validLogFormats = []string{"console", "json"}
)

// validateConfig accumulates every problem into a single error.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateDocking(config)...)
	validationErrors = append(validationErrors, validateOverlay(config.Overlay)...)
	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateDocking(config *Config) []string {
	var validationErrors []string
	if config.Docking.GhostTearOffThreshold < 0 {
		validationErrors = append(validationErrors, "docking.ghost_tear_off_threshold must be non-negative")
	}
	c := config.Docking.DebugEventLogCapacity
	if c < minEventLogCapacity || c > maxEventLogCapacity {
		validationErrors = append(validationErrors,
			fmt.Sprintf("docking.debug_event_log_capacity must be between %d and %d", minEventLogCapacity, maxEventLogCapacity))
	}
	return validationErrors
}

func validateOverlay(m overlay.Metrics) []string {
	var validationErrors []string
	ranges := []struct {
		name         string
		frac, lo, hi float64
	}{
		{"outer_band", m.OuterBandFrac, m.OuterBandMin, m.OuterBandMax},
		{"outer_size", m.OuterSizeFrac, m.OuterSizeMin, m.OuterSizeMax},
		{"outer_margin", m.OuterMarginFrac, m.OuterMarginMin, m.OuterMarginMax},
		{"inner_size", m.InnerSizeFrac, m.InnerSizeMin, m.InnerSizeMax},
		{"inner_gap", m.InnerGapFrac, m.InnerGapMin, m.InnerGapMax},
	}
	for _, r := range ranges {
		if r.frac <= 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("overlay.%s_frac must be positive", r.name))
		}
		if r.lo < 0 || r.lo > r.hi {
			validationErrors = append(validationErrors, fmt.Sprintf("overlay.%s_min must be in [0, %s_max]", r.name, r.name))
		}
	}
	if m.CenterRadius <= 0 || m.SideRadius < m.CenterRadius {
		validationErrors = append(validationErrors, "overlay.side_radius must be at least overlay.center_radius, both positive")
	}
	if m.HitExpandFrac < 0 {
		validationErrors = append(validationErrors, "overlay.hit_expand_frac must be non-negative")
	}
	return validationErrors
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	if config.Layout.TabBarHeight < 0 {
		validationErrors = append(validationErrors, "layout.tab_bar_height must be non-negative")
	}
	if config.Layout.GapWidth < 0 {
		validationErrors = append(validationErrors, "layout.gap_width must be non-negative")
	}
	if config.Layout.MaxTabWidth <= 0 {
		validationErrors = append(validationErrors, "layout.max_tab_width must be positive")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !slices.Contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of %s", strings.Join(validLogLevels, ", ")))
	}
	if !slices.Contains(validLogFormats, config.Logging.Format) {
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	return validationErrors
}
