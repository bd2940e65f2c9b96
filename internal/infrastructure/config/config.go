// Package config loads, validates and watches the dockyard configuration.
package config

import (
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/overlay"
)

// Config is the root configuration document.
type Config struct {
	Docking  DockingConfig   `mapstructure:"docking" toml:"docking" json:"docking" jsonschema:"description=Drag and drop behaviour"`
	Overlay  overlay.Metrics `mapstructure:"overlay" toml:"overlay" json:"overlay" jsonschema:"description=Docking target pixel constants"`
	Layout   LayoutConfig    `mapstructure:"layout" toml:"layout" json:"layout"`
	Logging  LoggingConfig   `mapstructure:"logging" toml:"logging" json:"logging"`
	Database DatabaseConfig  `mapstructure:"database" toml:"database" json:"database"`
}

// DockingConfig mirrors the orchestrator options.
type DockingConfig struct {
	// ConfigDockingWithShift inverts the Shift gate of window-move docking.
	ConfigDockingWithShift                  bool `mapstructure:"config_docking_with_shift" toml:"config_docking_with_shift" json:"config_docking_with_shift"`
	DetachParentTabsOnShift                 bool `mapstructure:"detach_parent_tabs_on_shift" toml:"detach_parent_tabs_on_shift" json:"detach_parent_tabs_on_shift"`
	DetachOnAltReleaseAnywhere              bool `mapstructure:"detach_on_alt_release_anywhere" toml:"detach_on_alt_release_anywhere" json:"detach_on_alt_release_anywhere"`
	WindowMoveTabDockRequiresExplicitTarget bool `mapstructure:"window_move_tab_dock_requires_explicit_target" toml:"window_move_tab_dock_requires_explicit_target" json:"window_move_tab_dock_requires_explicit_target"`
	FocusDetachedOnCustomTitleDrag          bool `mapstructure:"focus_detached_on_custom_title_drag" toml:"focus_detached_on_custom_title_drag" json:"focus_detached_on_custom_title_drag"`
	ShowOverlayForInternalDrags             bool `mapstructure:"show_overlay_for_internal_drags" toml:"show_overlay_for_internal_drags" json:"show_overlay_for_internal_drags"`
	ShowOuterOverlayTargets                 bool `mapstructure:"show_outer_overlay_targets" toml:"show_outer_overlay_targets" json:"show_outer_overlay_targets"`
	TearOffToFloatingOnCtrl                 bool `mapstructure:"tear_off_to_floating_on_ctrl" toml:"tear_off_to_floating_on_ctrl" json:"tear_off_to_floating_on_ctrl"`

	GhostTearOff                        bool    `mapstructure:"ghost_tear_off" toml:"ghost_tear_off" json:"ghost_tear_off"`
	GhostTearOffThreshold               float64 `mapstructure:"ghost_tear_off_threshold" toml:"ghost_tear_off_threshold" json:"ghost_tear_off_threshold" jsonschema:"minimum=0"`
	GhostSpawnNativeOnLeaveDock         bool    `mapstructure:"ghost_spawn_native_on_leave_dock" toml:"ghost_spawn_native_on_leave_dock" json:"ghost_spawn_native_on_leave_dock"`
	GhostUpgradeToNativeOnLeaveViewport bool    `mapstructure:"ghost_upgrade_to_native_on_leave_viewport" toml:"ghost_upgrade_to_native_on_leave_viewport" json:"ghost_upgrade_to_native_on_leave_viewport"`

	DebugDropTargets      bool `mapstructure:"debug_drop_targets" toml:"debug_drop_targets" json:"debug_drop_targets"`
	DebugEventLog         bool `mapstructure:"debug_event_log" toml:"debug_event_log" json:"debug_event_log"`
	DebugEventLogCapacity int  `mapstructure:"debug_event_log_capacity" toml:"debug_event_log_capacity" json:"debug_event_log_capacity" jsonschema:"minimum=1,maximum=10000"`
	DebugIntegrity        bool `mapstructure:"debug_integrity" toml:"debug_integrity" json:"debug_integrity"`
	DebugIntegrityPanic   bool `mapstructure:"debug_integrity_panic" toml:"debug_integrity_panic" json:"debug_integrity_panic"`
}

// LayoutConfig sizes container chrome.
type LayoutConfig struct {
	TabBarHeight float64 `mapstructure:"tab_bar_height" toml:"tab_bar_height" json:"tab_bar_height" jsonschema:"minimum=0"`
	GapWidth     float64 `mapstructure:"gap_width" toml:"gap_width" json:"gap_width" jsonschema:"minimum=0"`
	MaxTabWidth  float64 `mapstructure:"max_tab_width" toml:"max_tab_width" json:"max_tab_width" jsonschema:"minimum=1"`
}

// Style converts the section into a layout style with automatic grids.
func (l LayoutConfig) Style() entity.LayoutStyle {
	style := entity.DefaultLayoutStyle()
	style.TabBarHeight = l.TabBarHeight
	style.GapWidth = l.GapWidth
	style.MaxTabWidth = l.MaxTabWidth
	return style
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format        string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	TimeFormat    string `mapstructure:"time_format" toml:"time_format" json:"time_format"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	// MaxAge is in days.
	MaxAge        int    `mapstructure:"max_age" toml:"max_age" json:"max_age" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// DatabaseConfig locates the layout database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty"`
}
