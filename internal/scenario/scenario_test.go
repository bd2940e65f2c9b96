package scenario_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/scenario"
)

func TestParse_KeepsBaseSettings(t *testing.T) {
	// Arrange
	base := config.DefaultConfig()
	base.Docking.GhostTearOffThreshold = 20
	doc := []byte(`
name = "override"

[docking]
tear_off_to_floating_on_ctrl = false

[layout]
pane = "a"
`)

	// Act
	s, err := scenario.Parse(doc, base)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "override", s.Name)
	assert.False(t, s.Docking.TearOffToFloatingOnCtrl)
	assert.Equal(t, 20.0, s.Docking.GhostTearOffThreshold)
	assert.True(t, s.Docking.GhostTearOff)
	opts := s.Options()
	assert.False(t, opts.TearOffToFloatingOnCtrl)
	assert.Equal(t, 20.0, opts.GhostTearOffThreshold)
	assert.Equal(t, base.Overlay, opts.Overlay)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "syntax error", doc: "name = "},
		{
			name: "floating on a missing viewport",
			doc: `
[[floating]]
viewport = 2
size = [100.0, 100.0]
`,
		},
		{
			name: "floating without a size",
			doc: `
[[floating]]
viewport = 0
`,
		},
		{
			name: "expectation past the last frame",
			doc: `
[[frame]]
[[expect]]
frame = 3
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.doc), nil)

			assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
		})
	}
}

func TestLoad_NamesScenarioAfterPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unnamed.toml")
	require.NoError(t, writeFile(path, "[layout]\npane = \"a\"\n"))

	s, err := scenario.Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, path, s.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "nope.toml"), nil)

	assert.Error(t, err)
}

func TestFrameCount_ExpandsRepeats(t *testing.T) {
	s := &scenario.Scenario{Frames: []scenario.Frame{{}, {Repeat: 3}, {Repeat: 1}}}

	assert.Equal(t, 5, s.FrameCount())
}

func TestRun_Testdata(t *testing.T) {
	tests := []struct {
		file    string
		root    string
		windows []string
	}{
		{file: "detached_to_left_edge.toml", root: "Horizontal[d, Tabs[a, b]]"},
		{file: "tear_off.toml", root: "b", windows: []string{"a"}},
		{file: "reorder.toml", root: "Horizontal[b, a]"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			// Arrange
			s, err := scenario.Load(filepath.Join("testdata", tt.file), nil)
			require.NoError(t, err)

			// Act
			res, err := scenario.Run(context.Background(), s)

			// Assert
			require.NoError(t, err)
			assert.Empty(t, res.Failures)
			assert.True(t, res.Passed())
			assert.Equal(t, s.FrameCount(), res.Frames)
			assert.Equal(t, tt.root, res.Root)
			assert.Equal(t, tt.windows, res.Windows)
		})
	}
}
