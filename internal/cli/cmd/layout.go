package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/bnema/dockyard/internal/scenario"
	"github.com/bnema/dockyard/internal/ui/docking"
)

var layoutShowJSON bool

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Manage saved layouts",
}

var layoutSaveCmd = &cobra.Command{
	Use:   "save <name> <scenario.toml>",
	Short: "Replay a scenario and save the resulting layout",
	Long: `Replay a scenario to its last frame and store every window of the
resulting session under name. Saving identical content again keeps the
stored timestamp.`,
	Args: cobra.ExactArgs(2),
	RunE: runLayoutSave,
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutList,
}

var layoutShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Restore a saved layout and print its shape",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutShow,
}

var layoutDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutDelete,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutSaveCmd)
	layoutCmd.AddCommand(layoutListCmd)
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutDeleteCmd)
	layoutShowCmd.Flags().BoolVar(&layoutShowJSON, "json", false, "print the stored snapshot as JSON")
}

func runLayoutSave(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()
	log := logging.FromContext(ctx)
	renderer := styles.NewLayoutRenderer(a.Theme)

	s, err := scenario.Load(args[1], a.Config)
	if err != nil {
		return err
	}
	res, host, err := replay(a, s)
	if err != nil {
		return err
	}
	if !res.Passed() {
		log.Warn().Int("failures", len(res.Failures)).Str("scenario", s.Name).Msg("saving a scenario with failed expectations")
	}

	uc, err := a.SavedLayouts(ctx, host)
	if err != nil {
		return err
	}
	out, err := uc.Save(ctx, args[0], scenario.Registry{})
	if err != nil {
		return err
	}
	fmt.Println(renderer.RenderSaved(out))
	return nil
}

func runLayoutList(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	uc, err := a.SavedLayouts(a.Ctx(), nil)
	if err != nil {
		return err
	}
	layouts, err := uc.List(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Println(styles.NewLayoutRenderer(a.Theme).RenderList(layouts))
	return nil
}

func runLayoutShow(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()

	host := newHost(a)
	uc, err := a.SavedLayouts(ctx, host)
	if err != nil {
		return err
	}
	saved, err := uc.Restore(ctx, args[0], scenario.Registry{})
	if err != nil {
		return err
	}

	if layoutShowJSON {
		data, err := json.MarshalIndent(saved.Snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(styles.NewLayoutRenderer(a.Theme).RenderLayout(layoutView(saved, host)))
	return nil
}

func runLayoutDelete(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	uc, err := a.SavedLayouts(a.Ctx(), nil)
	if err != nil {
		return err
	}
	if err := uc.Delete(a.Ctx(), args[0]); err != nil {
		return err
	}
	fmt.Println(styles.NewLayoutRenderer(a.Theme).RenderDeleted(args[0]))
	return nil
}

// replay runs s to the end and returns the live session.
func replay(a *cli.App, s *scenario.Scenario) (*scenario.Result, *docking.Manager, error) {
	ctx := a.Ctx()
	r, err := scenario.NewRunner(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	for !r.Done() {
		if _, err := r.Step(ctx); err != nil {
			return nil, nil, err
		}
	}
	return r.Result(), r.Manager(), nil
}

// newHost is an empty session for restoring saved layouts into.
func newHost(a *cli.App) *docking.Manager {
	logger := logging.Component(*logging.FromContext(a.Ctx()), "docking")
	behavior := scenario.NewBehavior(a.Config.Layout.Style(), logger)
	return docking.New(entity.EmptyTree("root"), behavior, nil, docking.OptionsFromConfig(a.Config), logger)
}

func layoutView(saved *entity.SavedLayout, host *docking.Manager) styles.LayoutView {
	v := styles.LayoutView{
		Name:      saved.Name,
		UpdatedAt: saved.UpdatedAt,
		Root:      entity.TreeShape(host.Root(), scenario.PaneName),
	}
	viewports := []port.ViewportID{port.RootViewport}
	for _, w := range host.Detached() {
		v.Windows = append(v.Windows, entity.TreeShape(w.Tree, scenario.PaneName))
		viewports = append(viewports, w.Viewport)
	}
	for _, vp := range viewports {
		for _, f := range host.Floating(vp) {
			v.Floating = append(v.Floating, entity.TreeShape(f.Tree, scenario.PaneName))
		}
	}
	return v
}
