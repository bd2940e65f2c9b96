package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// dir overrides the XDG config directory when set.
	dir string
}

// NewManager creates a configuration manager rooted at the XDG config
// directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	m, err := newManager(configDir)
	if err != nil {
		return nil, err
	}
	m.viper.AddConfigPath(".")
	return m, nil
}

// NewManagerAt creates a configuration manager that reads and writes
// config.toml in dir only.
func NewManagerAt(dir string) (*Manager, error) {
	m, err := newManager(dir)
	if err != nil {
		return nil, err
	}
	m.dir = dir
	return m, nil
}

func newManager(configDir string) (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// DOCKYARD_DOCKING_GHOST_TEAR_OFF, DOCKYARD_LAYOUT_TAB_BAR_HEIGHT, ...
	v.SetEnvPrefix("DOCKYARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "DOCKYARD_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKYARD_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DOCKYARD_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKYARD_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables,
// writing a default file on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dir == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	return m.apply()
}

// apply unmarshals viper's state into a fresh Config. Callers hold mu.
func (m *Manager) apply() error {
	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := m.ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile(), err)
		}
		if createErr := m.createDefaultConfig(); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				m.configFile(),
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func (m *Manager) ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	if m.dir != "" {
		config.Database.Path = filepath.Join(m.dir, databaseName)
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "console"
	}

	capacity := config.Docking.DebugEventLogCapacity
	config.Docking.DebugEventLogCapacity = max(minEventLogCapacity, min(maxEventLogCapacity, capacity))
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	cfg := *m.config
	return &cfg
}

// GetConfigFile returns the config file in use.
func (m *Manager) GetConfigFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configFile()
}

func (m *Manager) configFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	if m.dir != "" {
		return filepath.Join(m.dir, "config.toml")
	}
	configFile, err := GetConfigFile()
	if err != nil {
		return "config.toml"
	}
	return configFile
}

func (m *Manager) createDefaultConfig() error {
	configFile := m.configFile()
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()
	m.setDockingDefaults(defaults)
	m.setOverlayDefaults(defaults)
	m.setLayoutDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.viper.SetDefault("database.path", "")
}

func (m *Manager) setDockingDefaults(defaults *Config) {
	d := defaults.Docking
	m.viper.SetDefault("docking.config_docking_with_shift", d.ConfigDockingWithShift)
	m.viper.SetDefault("docking.detach_parent_tabs_on_shift", d.DetachParentTabsOnShift)
	m.viper.SetDefault("docking.detach_on_alt_release_anywhere", d.DetachOnAltReleaseAnywhere)
	m.viper.SetDefault("docking.window_move_tab_dock_requires_explicit_target", d.WindowMoveTabDockRequiresExplicitTarget)
	m.viper.SetDefault("docking.focus_detached_on_custom_title_drag", d.FocusDetachedOnCustomTitleDrag)
	m.viper.SetDefault("docking.show_overlay_for_internal_drags", d.ShowOverlayForInternalDrags)
	m.viper.SetDefault("docking.show_outer_overlay_targets", d.ShowOuterOverlayTargets)
	m.viper.SetDefault("docking.tear_off_to_floating_on_ctrl", d.TearOffToFloatingOnCtrl)
	m.viper.SetDefault("docking.ghost_tear_off", d.GhostTearOff)
	m.viper.SetDefault("docking.ghost_tear_off_threshold", d.GhostTearOffThreshold)
	m.viper.SetDefault("docking.ghost_spawn_native_on_leave_dock", d.GhostSpawnNativeOnLeaveDock)
	m.viper.SetDefault("docking.ghost_upgrade_to_native_on_leave_viewport", d.GhostUpgradeToNativeOnLeaveViewport)
	m.viper.SetDefault("docking.debug_drop_targets", d.DebugDropTargets)
	m.viper.SetDefault("docking.debug_event_log", d.DebugEventLog)
	m.viper.SetDefault("docking.debug_event_log_capacity", d.DebugEventLogCapacity)
	m.viper.SetDefault("docking.debug_integrity", d.DebugIntegrity)
	m.viper.SetDefault("docking.debug_integrity_panic", d.DebugIntegrityPanic)
}

func (m *Manager) setOverlayDefaults(defaults *Config) {
	o := defaults.Overlay
	for key, value := range map[string]float64{
		"outer_band_frac":   o.OuterBandFrac,
		"outer_band_min":    o.OuterBandMin,
		"outer_band_max":    o.OuterBandMax,
		"outer_size_frac":   o.OuterSizeFrac,
		"outer_size_min":    o.OuterSizeMin,
		"outer_size_max":    o.OuterSizeMax,
		"outer_margin_frac": o.OuterMarginFrac,
		"outer_margin_min":  o.OuterMarginMin,
		"outer_margin_max":  o.OuterMarginMax,
		"inner_size_frac":   o.InnerSizeFrac,
		"inner_size_min":    o.InnerSizeMin,
		"inner_size_max":    o.InnerSizeMax,
		"inner_gap_frac":    o.InnerGapFrac,
		"inner_gap_min":     o.InnerGapMin,
		"inner_gap_max":     o.InnerGapMax,
		"center_radius":     o.CenterRadius,
		"side_radius":       o.SideRadius,
		"hit_expand_frac":   o.HitExpandFrac,
	} {
		m.viper.SetDefault("overlay."+key, value)
	}
}

func (m *Manager) setLayoutDefaults(defaults *Config) {
	m.viper.SetDefault("layout.tab_bar_height", defaults.Layout.TabBarHeight)
	m.viper.SetDefault("layout.gap_width", defaults.Layout.GapWidth)
	m.viper.SetDefault("layout.max_tab_width", defaults.Layout.MaxTabWidth)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.time_format", defaults.Logging.TimeFormat)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}
