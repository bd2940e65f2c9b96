package scenario_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/scenario"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func mustParse(t *testing.T, doc string) *scenario.Scenario {
	t.Helper()
	s, err := scenario.Parse([]byte(doc), nil)
	require.NoError(t, err)
	return s
}

const threeTabs = `
[layout]
kind = "tabs"

  [[layout.children]]
  pane = "a"

  [[layout.children]]
  pane = "b"

  [[layout.children]]
  pane = "c"
`

func TestRun_ReportsFailedExpectations(t *testing.T) {
	// Arrange
	s := mustParse(t, threeTabs+`
[[frame]]

[[expect]]
root = "Tabs[c]"
detached = 2
`)

	// Act
	res, err := scenario.Run(context.Background(), s)

	// Assert
	require.NoError(t, err)
	assert.False(t, res.Passed())
	require.Len(t, res.Failures, 2)
	assert.Equal(t, 1, res.Failures[0].Frame)
	assert.Equal(t, "frame 1: root is Tabs[a, b, c], want Tabs[c]", res.Failures[0].String())
	assert.Equal(t, "0 detached windows, want 2", res.Failures[1].Message)
}

func TestRun_WithoutFramesChecksInitialLayout(t *testing.T) {
	s := mustParse(t, threeTabs+`
[[expect]]
root = "Tabs[a, b, c]"
`)

	res, err := scenario.Run(context.Background(), s)

	require.NoError(t, err)
	assert.True(t, res.Passed())
	assert.Equal(t, 0, res.Frames)
}

func TestRun_TabEdits(t *testing.T) {
	// Arrange
	s := mustParse(t, threeTabs+`
[[frame]]

  [[frame.viewport]]
  close_tab = "b"
  select = "c"

[[expect]]
root = "Tabs[a, c]"
`)

	// Act
	r, err := scenario.NewRunner(context.Background(), s)
	require.NoError(t, err)
	_, err = r.Step(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, r.Failures())
	assert.Equal(t, 1, r.Behavior().Edits(port.EditTileClosed))
	assert.Equal(t, 1, r.Behavior().Edits(port.EditTabSelected))
}

func TestRun_UnknownPaneIsAnError(t *testing.T) {
	s := mustParse(t, threeTabs+`
[[frame]]

  [[frame.viewport]]
  drag = "zzz"
`)

	_, err := scenario.Run(context.Background(), s)

	assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
}

func TestRunner_StepsUntilFinished(t *testing.T) {
	// Arrange
	s := mustParse(t, threeTabs+`
[[frame]]
repeat = 2
`)
	r, err := scenario.NewRunner(context.Background(), s)
	require.NoError(t, err)

	// Act
	for !r.Done() {
		_, err := r.Step(context.Background())
		require.NoError(t, err)
	}
	_, err = r.Step(context.Background())

	// Assert
	assert.ErrorIs(t, err, scenario.ErrFinished)
	done, total := r.Progress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 2, total)
	assert.Equal(t, uint64(2), r.Manager().Frame())
}

func TestRun_FloatingWindows(t *testing.T) {
	// Arrange
	s := mustParse(t, threeTabs+`
[[floating]]
offset = [10.0, 20.0]
size = [200.0, 100.0]
collapsed = true

  [floating.layout]
  pane = "f"

[[frame]]

[[expect]]
floating = 1
`)

	// Act
	r, err := scenario.NewRunner(context.Background(), s)
	require.NoError(t, err)
	_, err = r.Step(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, r.Failures())
	fws := r.Manager().Floating(port.RootViewport)
	require.Len(t, fws, 1)
	assert.True(t, fws[0].Collapsed)
}
