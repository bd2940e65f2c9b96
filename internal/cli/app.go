// Package cli wires the dockyard commands to their dependencies.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/build"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dockyard/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	configManager *config.Manager
	db            *sqlite.LazyDB

	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and builds the logger. The database is
// opened on first use.
func NewApp() (*App, error) {
	const dataDirPerm = 0o755

	mgr, cfg := loadConfig()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("DOCKYARD_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logDir := cfg.Logging.LogDir
	if logDir == "" {
		logDir, _ = config.GetLogDir()
	}
	logger, logCleanup, err := logging.NewWithFile(
		logging.Config{Level: logging.ParseLevel(logLevel), Format: cfg.Logging.Format, TimeFormat: cfg.Logging.TimeFormat},
		logging.FileConfig{
			Enabled:    cfg.Logging.EnableFileLog && logDir != "",
			LogDir:     logDir,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAge,
			Compress:   cfg.Logging.Compress,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	ctx := logging.WithContext(context.Background(), logger)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), dataDirPerm); err != nil {
		logCleanup()
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &App{
		Config:        cfg,
		Theme:         styles.NewTheme(),
		configManager: mgr,
		db:            sqlite.NewLazyDB(cfg.Database.Path),
		ctx:           ctx,
		logCleanup:    logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// ConfigManager returns the manager the configuration was loaded with,
// nil when the defaults are in use.
func (a *App) ConfigManager() *config.Manager {
	return a.configManager
}

// Database returns the lazily opened layout database.
func (a *App) Database() port.DatabaseProvider {
	return a.db
}

// Layouts opens the layout repository.
func (a *App) Layouts(ctx context.Context) (repository.LayoutRepository, error) {
	db, err := a.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	return sqlite.NewLayoutRepository(db), nil
}

// SavedLayouts returns the saved layout use case bound to host, which may
// be nil for read-only commands.
func (a *App) SavedLayouts(ctx context.Context, host port.LayoutHost) (*usecase.ManageSavedLayoutsUseCase, error) {
	repo, err := a.Layouts(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewManageSavedLayoutsUseCase(repo, host), nil
}

// loadConfig loads configuration from standard locations, falling back
// to the defaults.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, withDatabasePath(config.DefaultConfig())
	}
	if err := mgr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\nusing default configuration\n", err)
		return nil, withDatabasePath(config.DefaultConfig())
	}
	return mgr, mgr.Get()
}

func withDatabasePath(cfg *config.Config) *config.Config {
	if cfg.Database.Path == "" {
		if p, err := config.GetDatabaseFile(); err == nil {
			cfg.Database.Path = p
		} else {
			cfg.Database.Path = filepath.Join(os.TempDir(), "dockyard", "dockyard.db")
		}
	}
	return cfg
}
