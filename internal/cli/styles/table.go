package styles

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockyard/internal/application/usecase"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Bold(false)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// LayoutTableColumns returns columns for the saved layout table.
func LayoutTableColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Panes", Width: 7},
		{Title: "Windows", Width: 9},
		{Title: "Updated", Width: 12},
	}
}

// LayoutRow converts a layout summary to a table row.
func LayoutRow(s usecase.LayoutSummary, now time.Time) table.Row {
	return table.Row{s.Name, strconv.Itoa(s.Panes), strconv.Itoa(s.Windows), RelativeTime(s.UpdatedAt, now)}
}
