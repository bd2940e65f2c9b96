package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/infrastructure/config"
)

func TestSimulateAll_KeepsOrderAndReportsPerFileErrors(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	failing := filepath.Join(dir, "failing.toml")
	require.NoError(t, os.WriteFile(failing, []byte(`
name = "wrong root"

[layout]
pane = "a"

[[frame]]

[[expect]]
root = "b"
`), 0o600))
	paths := []string{
		filepath.Join("..", "..", "scenario", "testdata", "tear_off.toml"),
		filepath.Join(dir, "missing.toml"),
		failing,
		filepath.Join("..", "..", "scenario", "testdata", "reorder.toml"),
	}

	// Act
	sims, err := simulateAll(context.Background(), config.DefaultConfig(), paths, 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, sims, 4)
	for i, sim := range sims {
		assert.Equal(t, paths[i], sim.path)
	}
	require.NoError(t, sims[0].err)
	assert.True(t, sims[0].result.Passed())
	assert.Error(t, sims[1].err)
	require.NoError(t, sims[2].err)
	assert.False(t, sims[2].result.Passed())
	require.NoError(t, sims[3].err)
	assert.True(t, sims[3].result.Passed())
}

func TestSimulateAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := simulateAll(ctx, config.DefaultConfig(), []string{"a.toml"}, 1)

	assert.ErrorIs(t, err, context.Canceled)
}
