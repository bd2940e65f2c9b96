package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/cli/model"
	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/bnema/dockyard/internal/scenario"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scenario.toml>",
	Short: "Step through a scenario interactively",
	Long: `Open a scenario in a terminal UI and step through it frame by frame,
showing every window's tree, the drop decision of each surface, viewport
commands and the debug event log.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var inspectWatch bool

func init() {
	inspectCmd.Flags().BoolVarP(&inspectWatch, "watch", "w", false, "Restart the scenario when the config file changes")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	s, err := scenario.Load(args[0], a.Config)
	if err != nil {
		return err
	}

	// Keep frame logs out of the alternate screen.
	ctx := logging.WithContext(a.Ctx(), logging.NewFromConfigValues("error", "console"))
	m, err := model.NewInspectModel(ctx, a.Theme, s)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if inspectWatch {
		if err := watchScenario(a.ConfigManager(), args[0], p); err != nil {
			return err
		}
	}
	_, err = p.Run()
	return err
}

// watchScenario reloads path against every new config and hands the
// result to the running inspector.
func watchScenario(mgr *config.Manager, path string, p *tea.Program) error {
	if mgr == nil {
		return nil
	}
	mgr.OnConfigChange(func(cfg *config.Config) {
		s, err := scenario.Load(path, cfg)
		p.Send(model.ScenarioReloadedMsg{Scenario: s, Err: err})
	})
	return mgr.Watch()
}
