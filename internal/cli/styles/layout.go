package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/bnema/dockyard/internal/application/usecase"
)

// headerLines is the height of the table header with its border.
const headerLines = 2

// LayoutRenderer renders saved layout output.
type LayoutRenderer struct {
	theme *Theme
	now   func() time.Time
}

// NewLayoutRenderer creates a layout renderer.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme, now: time.Now}
}

// LayoutView is a restored layout, ready for display.
type LayoutView struct {
	Name      string
	UpdatedAt time.Time
	Root      string
	Windows   []string
	Floating  []string
}

// RenderSaved reports a save.
func (r *LayoutRenderer) RenderSaved(out *usecase.SaveLayoutOutput) string {
	icon := r.theme.SuccessStyle.Render(IconCheck)
	if !out.Changed {
		return fmt.Sprintf("%s %s %s", icon, r.theme.Highlight.Render(out.Layout.Name), r.theme.Subtle.Render("unchanged"))
	}
	hash := out.Layout.ContentHash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return fmt.Sprintf("%s saved %s %s", icon, r.theme.Highlight.Render(out.Layout.Name), r.theme.MutedBadge(hash))
}

// RenderDeleted reports a delete.
func (r *LayoutRenderer) RenderDeleted(name string) string {
	return fmt.Sprintf("%s deleted %s", r.theme.WarningStyle.Render(IconTrash), r.theme.Highlight.Render(name))
}

// RenderList renders the saved layout table.
func (r *LayoutRenderer) RenderList(layouts []usecase.LayoutSummary) string {
	if len(layouts) == 0 {
		return r.theme.Subtle.Render("No saved layouts.")
	}
	now := r.now()
	rows := make([]table.Row, 0, len(layouts))
	for _, l := range layouts {
		rows = append(rows, LayoutRow(l, now))
	}
	width := 0
	for _, c := range LayoutTableColumns() {
		width += c.Width + 2
	}
	t := NewStyledTable(r.theme, LayoutTableColumns(), rows, width, len(rows)+headerLines)
	return t.View()
}

// RenderLayout renders the shapes of every host of a layout.
func (r *LayoutRenderer) RenderLayout(v LayoutView) string {
	var sb strings.Builder
	sb.WriteString(r.theme.BoxHeader.Render(v.Name))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s\n", r.theme.Subtle.Render("root    "), r.theme.Normal.Render(v.Root))
	for i, w := range v.Windows {
		fmt.Fprintf(&sb, "%s %s\n", r.theme.Subtle.Render(fmt.Sprintf("window %d", i+1)), r.theme.Normal.Render(w))
	}
	for i, f := range v.Floating {
		fmt.Fprintf(&sb, "%s %s\n", r.theme.Subtle.Render(fmt.Sprintf("float %d ", i+1)), r.theme.Normal.Render(f))
	}
	if !v.UpdatedAt.IsZero() {
		sb.WriteString(r.theme.Subtle.Render("updated " + RelativeTime(v.UpdatedAt, r.now())))
	}
	return r.theme.Box.Render(strings.TrimRight(sb.String(), "\n"))
}

// RenderError renders an error line.
func (r *LayoutRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
