package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/bnema/dockyard/internal/scenario"
)

var simulateJobs int

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.toml>...",
	Short: "Replay scripted drag sessions and check their expectations",
	Long: `Replay every scenario file headlessly, frame by frame, and report the
expectations that did not hold. Scenarios run concurrently; each one owns
its own docking session.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntVarP(&simulateJobs, "jobs", "j", runtime.NumCPU(), "scenarios to run at once")
}

// simulation is the outcome of one scenario file.
type simulation struct {
	path   string
	result *scenario.Result
	err    error
}

func runSimulate(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	sims, err := simulateAll(a.Ctx(), a.Config, args, simulateJobs)
	if err != nil {
		return err
	}

	renderer := styles.NewScenarioRenderer(a.Theme)
	passed, failed, errored := 0, 0, 0
	for _, sim := range sims {
		switch {
		case sim.err != nil:
			errored++
			fmt.Println(renderer.RenderError(sim.path, sim.err))
		case sim.result.Passed():
			passed++
			fmt.Println(renderer.RenderResult(sim.result))
		default:
			failed++
			fmt.Println(renderer.RenderResult(sim.result))
		}
	}
	fmt.Println(renderer.RenderSummary(passed, failed, errored))

	if failed+errored > 0 {
		return fmt.Errorf("%d of %d scenarios did not pass", failed+errored, len(sims))
	}
	return nil
}

// simulateAll runs every file, at most jobs at a time. Per-file errors
// are reported in the result slice, whose order matches paths.
func simulateAll(ctx context.Context, base *config.Config, paths []string, jobs int) ([]simulation, error) {
	log := logging.FromContext(ctx)
	sims := make([]simulation, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sims[i] = simulation{path: path}
			s, err := scenario.Load(path, base)
			if err != nil {
				sims[i].err = err
				return nil
			}
			res, err := scenario.Run(ctx, s)
			if err != nil {
				sims[i].err = err
				return nil
			}
			sims[i].result = res
			log.Debug().Str("scenario", s.Name).Bool("passed", res.Passed()).Int("frames", res.Frames).Msg("scenario finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sims, nil
}
