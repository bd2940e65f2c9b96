package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// InspectKeyMap defines keybindings for the scenario inspector.
type InspectKeyMap struct {
	Step   key.Binding
	Play   key.Binding
	Finish key.Binding
	Reset  key.Binding
	Events key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k InspectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Play, k.Reset, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k InspectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Step, k.Play, k.Finish},
		{k.Reset, k.Events},
		{k.Help, k.Quit},
	}
}

// DefaultInspectKeyMap returns the default inspector keybindings.
func DefaultInspectKeyMap() InspectKeyMap {
	return InspectKeyMap{
		Step: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("→/n", "next frame"),
		),
		Play: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Finish: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "run to end"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Events: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "toggle event log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.Ellipsis = theme.Subtle
	return h
}
