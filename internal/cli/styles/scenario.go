package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/dockyard/internal/scenario"
)

// ScenarioRenderer renders simulate output.
type ScenarioRenderer struct {
	theme *Theme
}

// NewScenarioRenderer creates a scenario renderer.
func NewScenarioRenderer(theme *Theme) *ScenarioRenderer {
	return &ScenarioRenderer{theme: theme}
}

// RenderResult renders one finished scenario with its failures.
func (r *ScenarioRenderer) RenderResult(res *scenario.Result) string {
	var sb strings.Builder
	status := r.theme.SuccessStyle.Render(IconCheck + " PASS")
	if !res.Passed() {
		status = r.theme.ErrorStyle.Render(IconX + " FAIL")
	}
	fmt.Fprintf(&sb, "%s %s %s", status, r.theme.Title.Render(res.Name), r.theme.CountBadge(res.Frames, "frame"))
	for _, f := range res.Failures {
		fmt.Fprintf(&sb, "\n    %s %s", r.theme.ErrorStyle.Render(IconArrow), f.String())
	}
	return sb.String()
}

// RenderError renders a scenario that could not run.
func (r *ScenarioRenderer) RenderError(name string, err error) string {
	return fmt.Sprintf("%s %s %s", r.theme.WarningStyle.Render(IconWarning+" ERROR"), r.theme.Title.Render(name), r.theme.Subtle.Render(err.Error()))
}

// RenderSummary renders the totals line.
func (r *ScenarioRenderer) RenderSummary(passed, failed, errored int) string {
	parts := []string{r.theme.SuccessStyle.Render(fmt.Sprintf("%d passed", passed))}
	if failed > 0 {
		parts = append(parts, r.theme.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	if errored > 0 {
		parts = append(parts, r.theme.WarningStyle.Render(fmt.Sprintf("%d errored", errored)))
	}
	return strings.Join(parts, r.theme.Subtle.Render(", "))
}
