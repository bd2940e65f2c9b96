package model

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/scenario"
)

const tearOff = `
name = "tear off"

[docking]
debug_event_log = true

[layout]
kind = "tabs"

  [[layout.children]]
  pane = "a"

  [[layout.children]]
  pane = "b"

[[frame]]

  [[frame.viewport]]
  pointer = [400.0, 300.0]
  down = true
  drag = "a"

[[frame]]

  [[frame.viewport]]
  pointer = [900.0, 300.0]
  released = true
`

func newTestInspect(t *testing.T) InspectModel {
	t.Helper()
	s, err := scenario.Parse([]byte(tearOff), nil)
	require.NoError(t, err)
	m, err := NewInspectModel(context.Background(), styles.NewTheme(), s)
	require.NoError(t, err)
	return m
}

func press(t *testing.T, m InspectModel, keys string) (InspectModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	im, ok := next.(InspectModel)
	require.True(t, ok)
	return im, cmd
}

func TestInspectModel_StepsFrames(t *testing.T) {
	// Arrange
	m := newTestInspect(t)

	// Act
	m, _ = press(t, m, "n")

	// Assert
	done, total := m.Runner().Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
	view := m.View()
	assert.Contains(t, view, "frame 1/2")
	assert.Contains(t, view, "payload tile")
	assert.Contains(t, view, "session START")
}

func TestInspectModel_FinishAndReset(t *testing.T) {
	// Arrange
	m := newTestInspect(t)

	// Act
	m, _ = press(t, m, "G")
	finished := m.View()
	m, _ = press(t, m, "r")

	// Assert
	assert.Contains(t, finished, "finished")
	assert.Contains(t, finished, "viewport-1")
	assert.Contains(t, finished, "create viewport-1")
	done, _ := m.Runner().Progress()
	assert.Equal(t, 0, done)
}

func TestInspectModel_Playback(t *testing.T) {
	m := newTestInspect(t)

	m, cmd := press(t, m, " ")
	require.True(t, m.playing)
	require.NotNil(t, cmd)

	next, cmd := m.Update(tickMsg{})
	m = next.(InspectModel)
	require.NotNil(t, cmd)
	next, cmd = m.Update(tickMsg{})
	m = next.(InspectModel)

	assert.Nil(t, cmd)
	assert.False(t, m.playing)
	assert.True(t, m.Runner().Done())
}

func TestInspectModel_ToggleEventsAndQuit(t *testing.T) {
	m := newTestInspect(t)

	m, _ = press(t, m, "e")
	assert.NotContains(t, m.View(), "Events")

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInspectModel_ScenarioReloaded(t *testing.T) {
	// Arrange
	m := newTestInspect(t)
	m, _ = press(t, m, "G")
	reloaded, err := scenario.Parse([]byte(tearOff), nil)
	require.NoError(t, err)
	reloaded.Name = "reloaded"

	// Act
	next, _ := m.Update(ScenarioReloadedMsg{Scenario: reloaded})
	m = next.(InspectModel)
	failed, _ := m.Update(ScenarioReloadedMsg{Err: errors.New("bad toml")})

	// Assert
	done, _ := m.Runner().Progress()
	assert.Equal(t, 0, done)
	assert.Contains(t, m.View(), "reloaded")
	assert.Contains(t, failed.(InspectModel).View(), "bad toml")
}
