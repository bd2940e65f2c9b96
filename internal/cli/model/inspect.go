// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/bnema/dockyard/internal/scenario"
	"github.com/bnema/dockyard/internal/ui/docking"
)

const (
	playInterval   = 150 * time.Millisecond
	summaryNodes   = 24
	eventLogLines  = 12
	minPanelWidth  = 36
	defaultColumns = 100
)

// InspectModel steps through a scenario one frame at a time.
type InspectModel struct {
	keys styles.InspectKeyMap
	help help.Model

	runner     *scenario.Runner
	playing    bool
	showEvents bool
	width      int
	height     int
	err        error

	ctx      context.Context
	scenario *scenario.Scenario
	theme    *styles.Theme
}

// NewInspectModel creates the inspector for s.
func NewInspectModel(ctx context.Context, theme *styles.Theme, s *scenario.Scenario) (InspectModel, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("scenario", s.Name).Msg("creating inspect model")

	runner, err := scenario.NewRunner(ctx, s)
	if err != nil {
		return InspectModel{}, err
	}
	return InspectModel{
		keys:       styles.DefaultInspectKeyMap(),
		help:       styles.NewStyledHelp(theme),
		runner:     runner,
		showEvents: true,
		width:      defaultColumns,
		height:     40,
		ctx:        ctx,
		scenario:   s,
		theme:      theme,
	}, nil
}

// ScenarioReloadedMsg replaces the inspected scenario and restarts it
// from frame zero. Err is shown instead when the reload failed.
type ScenarioReloadedMsg struct {
	Scenario *scenario.Scenario
	Err      error
}

// Runner exposes the scenario runner.
func (m InspectModel) Runner() *scenario.Runner { return m.runner }

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// tickMsg advances playback.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m = m.step()
		if m.runner.Done() || m.err != nil {
			m.playing = false
			return m, nil
		}
		return m, tick()

	case ScenarioReloadedMsg:
		if msg.Err != nil {
			m.playing = false
			m.err = msg.Err
			return m, nil
		}
		m.scenario = msg.Scenario
		return m.reset(), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Step):
			m.playing = false
			return m.step(), nil
		case key.Matches(msg, m.keys.Play):
			if m.runner.Done() {
				return m, nil
			}
			m.playing = !m.playing
			if m.playing {
				return m, tick()
			}
			return m, nil
		case key.Matches(msg, m.keys.Finish):
			m.playing = false
			for !m.runner.Done() && m.err == nil {
				m = m.step()
			}
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			return m.reset(), nil
		case key.Matches(msg, m.keys.Events):
			m.showEvents = !m.showEvents
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}
	return m, nil
}

func (m InspectModel) step() InspectModel {
	if m.runner.Done() {
		return m
	}
	if _, err := m.runner.Step(m.ctx); err != nil {
		m.err = err
	}
	return m
}

func (m InspectModel) reset() InspectModel {
	runner, err := scenario.NewRunner(m.ctx, m.scenario)
	if err != nil {
		m.err = err
		return m
	}
	m.runner = runner
	m.playing = false
	m.err = nil
	return m
}

// View implements tea.Model.
func (m InspectModel) View() string {
	var sections []string
	sections = append(sections, m.renderHeader())

	panelWidth := max(m.width/2-2, minPanelWidth)
	left := m.renderLayout(panelWidth)
	right := m.renderFrame(panelWidth)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, right))

	if m.showEvents {
		sections = append(sections, m.renderEvents(m.width-2))
	}
	if failures := m.runner.Failures(); len(failures) > 0 {
		lines := make([]string, 0, len(failures))
		for _, f := range failures {
			lines = append(lines, m.theme.ErrorStyle.Render(styles.IconX+" "+f.String()))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if m.err != nil {
		sections = append(sections, m.theme.ErrorStyle.Render("error: "+m.err.Error()))
	}
	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n")
}

func (m InspectModel) renderHeader() string {
	done, total := m.runner.Progress()
	status := m.theme.MutedBadge("paused")
	switch {
	case m.playing:
		status = m.theme.AccentBadge("playing")
	case m.runner.Done():
		status = m.theme.MutedBadge("finished")
	}
	return fmt.Sprintf("%s  %s  %s",
		m.theme.Title.Render(m.scenario.Name),
		m.theme.Subtle.Render(fmt.Sprintf("frame %d/%d", done, total)),
		status,
	)
}

func (m InspectModel) renderLayout(width int) string {
	mgr := m.runner.Manager()
	var sb strings.Builder
	sb.WriteString(m.theme.Subtitle.Render("Root"))
	sb.WriteString("\n")
	sb.WriteString(entity.TreeShape(mgr.Root(), scenario.PaneName))
	sb.WriteString("\n")
	sb.WriteString(m.theme.Subtle.Render(mgr.Root().DebugSummary(summaryNodes)))

	for _, w := range mgr.Detached() {
		fmt.Fprintf(&sb, "\n\n%s %s\n%s",
			m.theme.Subtitle.Render(styles.IconWindow+" "+w.Viewport.String()),
			m.theme.Subtle.Render(fmt.Sprintf("%q at (%.0f,%.0f) %.0fx%.0f", w.Title, w.InnerRect.Min.X, w.InnerRect.Min.Y, w.InnerRect.Width(), w.InnerRect.Height())),
			entity.TreeShape(w.Tree, scenario.PaneName))
	}
	for _, vp := range append([]port.ViewportID{port.RootViewport}, detachedViewports(mgr)...) {
		for _, f := range mgr.Floating(vp) {
			state := ""
			if f.Collapsed {
				state = " collapsed"
			}
			fmt.Fprintf(&sb, "\n\n%s\n%s",
				m.theme.Subtitle.Render(fmt.Sprintf("%s floating-%d%s", vp, f.ID, state)),
				entity.TreeShape(f.Tree, scenario.PaneName))
		}
	}
	return m.theme.Pane.Width(width).Render(sb.String())
}

func (m InspectModel) renderFrame(width int) string {
	out := m.runner.Last()
	var sb strings.Builder
	sb.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("Frame %d", out.Frame)))

	payload := "idle"
	if out.Payload != nil {
		payload = out.Payload.String()
	}
	fmt.Fprintf(&sb, "\n%s %s", m.theme.Subtle.Render("payload"), payload)
	if out.Ghost != nil {
		kind := "contained"
		if out.Ghost.Native {
			kind = "native"
		}
		fmt.Fprintf(&sb, "\n%s %s on %s", m.theme.Subtle.Render("ghost  "), kind, out.Ghost.Viewport)
	}

	for _, ov := range out.Overlays {
		fmt.Fprintf(&sb, "\n\n%s %s", m.theme.Highlight.Render(ov.Surface.String()), m.theme.MutedBadge(ov.Kind.String()))
		if ov.Paint != nil {
			scope := "tile " + ov.Paint.Tile.String()
			if ov.Paint.Outer {
				scope = "outer"
			}
			hovered := "none"
			if ov.Paint.Hovered != nil {
				hovered = ov.Paint.Hovered.Target.String()
			}
			fmt.Fprintf(&sb, "\n  %s %s, hovered %s", m.theme.Subtle.Render("overlay"), scope, hovered)
		}
		if ov.Final != nil {
			fmt.Fprintf(&sb, "\n  %s %s", m.theme.Subtle.Render("final  "), ov.Final.String())
		}
		if ov.Preview != nil {
			r := *ov.Preview
			fmt.Fprintf(&sb, "\n  %s (%.0f,%.0f) %.0fx%.0f", m.theme.Subtle.Render("preview"), r.Min.X, r.Min.Y, r.Width(), r.Height())
		}
	}

	if len(out.Commands) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.Subtitle.Render("Commands"))
		for _, c := range out.Commands {
			fmt.Fprintf(&sb, "\n%s %s", m.theme.Highlight.Render(styles.IconArrow), c.String())
		}
	}
	return m.theme.Pane.Width(width).Render(sb.String())
}

func (m InspectModel) renderEvents(width int) string {
	events := m.runner.Manager().EventLog()
	if len(events) > eventLogLines {
		events = events[len(events)-eventLogLines:]
	}
	body := m.theme.Subtle.Render("event log empty (set docking.debug_event_log)")
	if len(events) > 0 {
		body = strings.Join(events, "\n")
	}
	return m.theme.Pane.Width(max(width, minPanelWidth)).Render(m.theme.Subtitle.Render("Events") + "\n" + body)
}

func detachedViewports(mgr *docking.Manager) []port.ViewportID {
	windows := mgr.Detached()
	out := make([]port.ViewportID, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.Viewport)
	}
	return out
}
