package docking_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/dockyard/internal/application/port"
	portmocks "github.com/bnema/dockyard/internal/application/port/mocks"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/ui/docking"
)

const detachedVP = port.ViewportID(1)

var detachedInner = entity.Rect{Min: entity.Pos{X: 900}, Max: entity.Pos{X: 1200, Y: 200}}

// withDetached builds a session whose root is Tabs[a, b] with one
// detached window holding pane d.
func withDetached(t *testing.T, behavior *fakeBehavior, commander port.ViewportCommander) *docking.Manager {
	t.Helper()
	inner := detachedInner
	ws := entity.NewWorkspaceLayout(entity.NewTabsTree("root", []entity.Pane{"a", "b"})).
		WithDetached("", &inner, entity.NewTabsTree("det", []entity.Pane{"d"}))
	return docking.NewFromWorkspace(ws, behavior, commander, docking.DefaultOptions(), zerolog.Nop())
}

func TestRunFrame_DetachedTileToRootLeftEdge(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	commander := portmocks.NewMockViewportCommander(ctrl)
	var sent []port.ViewportCommand
	commander.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c port.ViewportCommand) error {
		sent = append(sent, c)
		return nil
	}).Times(2)
	behavior := &fakeBehavior{}
	m := withDetached(t, behavior, commander)
	w, ok := m.DetachedWindow(detachedVP)
	require.True(t, ok)
	d := paneTile(t, w.Tree, "d")

	// Act: pick d up in the detached window, release over the root's
	// outer left target.
	run(m, docking.FrameInput{Viewports: map[port.ViewportID]docking.ViewportInput{
		port.RootViewport: {InnerRect: rootInner},
		detachedVP: {
			InnerRect: detachedInner,
			Pointer:   held(50, 50, entity.Vec{}),
			Drags:     []docking.DragReport{{Surface: docking.DockTreeOf(detachedVP), Tile: d}},
		},
	}})
	out := run(m, docking.FrameInput{Viewports: map[port.ViewportID]docking.ViewportInput{
		port.RootViewport: {InnerRect: rootInner, Pointer: docking.PointerInput{Global: pos(46, 300), Released: true}},
		detachedVP:        {InnerRect: detachedInner, Pointer: docking.PointerInput{Released: true}},
	}})

	// Assert
	assert.Equal(t, "Horizontal[d, Tabs[a, b]]", shape(m.Root()))
	assert.Empty(t, m.Detached())
	assert.Nil(t, out.Payload)
	assert.Equal(t, []port.CommandKind{port.CommandClose}, commandKinds(out.Commands))
	assert.Equal(t, 1, behavior.count(port.EditTileDropped))
	require.Len(t, sent, 2)
	assert.Equal(t, port.CommandCreate, sent[0].Kind)
	assert.Equal(t, "d", sent[0].Title)
	assert.Equal(t, port.ViewportCommand{Kind: port.CommandClose, Viewport: detachedVP}, sent[1])
}

func TestRunFrame_DetachedTileSplitsInSideBand(t *testing.T) {
	// Arrange
	m := withDetached(t, &fakeBehavior{}, nil)
	d := paneTile(t, m.Detached()[0].Tree, "d")
	run(m, docking.FrameInput{Viewports: map[port.ViewportID]docking.ViewportInput{
		port.RootViewport: {InnerRect: rootInner},
		detachedVP: {
			InnerRect: detachedInner,
			Pointer:   held(50, 50, entity.Vec{}),
			Drags:     []docking.DragReport{{Surface: docking.DockTreeOf(detachedVP), Tile: d}},
		},
	}})

	// Act: a sits under the tab bar with its center at (400, 312) and
	// inner buttons of half size 28. The pointer is outside every button
	// box but within the side radius, right of center.
	run(m, docking.FrameInput{Viewports: map[port.ViewportID]docking.ViewportInput{
		port.RootViewport: {InnerRect: rootInner, Pointer: docking.PointerInput{Global: pos(444.8, 354), Released: true}},
		detachedVP:        {InnerRect: detachedInner, Pointer: docking.PointerInput{Released: true}},
	}})

	// Assert
	assert.Equal(t, "Tabs[Horizontal[a, d], b]", shape(m.Root()))
	assert.Empty(t, m.Detached())
	assert.Empty(t, m.Root().IntegrityIssues())
}

func TestRunFrame_AltReleaseTakesOneAction(t *testing.T) {
	// Arrange
	opts := docking.DefaultOptions()
	opts.DebugEventLog = true
	m := docking.New(entity.NewTabsTree("root", []entity.Pane{"a", "b"}), &fakeBehavior{}, nil, opts, zerolog.Nop())
	startDrag(t, m, "a")

	// Act
	out := run(m, rootOnly(docking.ViewportInput{
		Pointer:   released(1000, 300, entity.Vec{X: 600}),
		Modifiers: docking.Modifiers{Alt: true},
	}))

	// Assert
	assert.Len(t, m.Detached(), 1)
	assert.Equal(t, "b", shape(m.Root()))
	assert.Equal(t, []port.CommandKind{port.CommandCreate}, commandKinds(out.Commands))
	releases := 0
	for _, line := range m.EventLog() {
		if strings.Contains(line, "session RELEASE") && !strings.Contains(line, "ignored") {
			releases++
		}
	}
	assert.Equal(t, 1, releases)
}

func TestRunFrame_InternalDropOnOuterTarget(t *testing.T) {
	// Arrange
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a", "b"}), &fakeBehavior{}, docking.DefaultOptions())
	startDrag(t, m, "a")

	// Act: the outer right target of an 800x600 dock is centered at
	// (754, 300).
	out := run(m, rootOnly(docking.ViewportInput{Pointer: released(754, 300, entity.Vec{X: 354})}))

	// Assert
	assert.Equal(t, "Horizontal[b, a]", shape(m.Root()))
	assert.Nil(t, out.Payload)
	assert.Empty(t, m.Detached())
	assert.Empty(t, m.Root().IntegrityIssues())
}

func TestRunFrame_TearOff(t *testing.T) {
	tests := []struct {
		name         string
		root         entity.Blueprint
		drag         string
		mods         docking.Modifiers
		wantRoot     string
		wantDetached string
		wantFloating string
	}{
		{
			name:         "release outside spawns a native window",
			root:         tabs(pane("a"), pane("b")),
			drag:         "a",
			wantRoot:     "b",
			wantDetached: "a",
		},
		{
			name:         "shift takes the whole tab group",
			root:         hsplit(tabs(pane("a"), pane("b")), pane("c")),
			drag:         "a",
			mods:         docking.Modifiers{Shift: true},
			wantRoot:     "c",
			wantDetached: "Tabs[a, b]",
		},
		{
			name:         "ctrl opens a floating window",
			root:         tabs(pane("a"), pane("b")),
			drag:         "b",
			mods:         docking.Modifiers{Ctrl: true},
			wantRoot:     "a",
			wantFloating: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			behavior := &fakeBehavior{}
			m := newManager(mustTree(t, "root", tt.root), behavior, docking.DefaultOptions())
			startDrag(t, m, tt.drag)

			// Act
			out := run(m, rootOnly(docking.ViewportInput{
				Pointer:   released(900, 300, entity.Vec{X: 500}),
				Modifiers: tt.mods,
			}))

			// Assert
			assert.Equal(t, tt.wantRoot, shape(m.Root()))
			assert.Nil(t, out.Payload)
			if tt.wantDetached != "" {
				require.Len(t, m.Detached(), 1)
				w := m.Detached()[0]
				assert.Equal(t, tt.wantDetached, shape(w.Tree))
				assert.Equal(t, entity.Pos{X: 880, Y: 290}, w.InnerRect.Min)
				assert.Equal(t, []port.CommandKind{port.CommandCreate}, commandKinds(out.Commands))
			} else {
				assert.Empty(t, m.Detached())
			}
			if tt.wantFloating != "" {
				fws := m.Floating(port.RootViewport)
				require.Len(t, fws, 1)
				assert.Equal(t, tt.wantFloating, shape(fws[0].Tree))
				frame := fws[0].FrameRect(rootInner, entity.DefaultLayoutStyle().TabBarHeight)
				assert.True(t, rootInner.Contains(frame.Min))
			}
			assert.Equal(t, 1, behavior.count(port.EditTileDropped))
		})
	}
}

func TestRunFrame_LockedTileIsNotPickedUp(t *testing.T) {
	// Arrange
	b := tabs(pane("a"), pane("b"))
	b.Flags = []string{"lock_layout"}
	m := newManager(mustTree(t, "root", b), &fakeBehavior{}, docking.DefaultOptions())
	a := paneTile(t, m.Root(), "a")

	// Act
	out := run(m, rootOnly(docking.ViewportInput{
		Pointer: held(400, 300, entity.Vec{}),
		Drags:   []docking.DragReport{{Surface: docking.DockTreeOf(port.RootViewport), Tile: a}},
	}))

	// Assert
	assert.Nil(t, out.Payload)
}

func TestRunFrame_StalePayloadIsCleared(t *testing.T) {
	// Arrange
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a", "b"}), &fakeBehavior{}, docking.DefaultOptions())
	startDrag(t, m, "a")

	// Act: nothing reports the drag and no button is held.
	out := run(m, rootOnly(docking.ViewportInput{Pointer: docking.PointerInput{Pos: pos(400, 300)}}))

	// Assert
	assert.Nil(t, out.Payload)
	_, ok := m.Payload()
	assert.False(t, ok)
	assert.Equal(t, "Tabs[a, b]", shape(m.Root()))
}

func TestRunFrame_NativeGhostFollowsPointerAndCancels(t *testing.T) {
	// Arrange
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a", "b"}), &fakeBehavior{}, docking.DefaultOptions())
	startDrag(t, m, "a")

	// Act: leave the dock with the button held.
	out := run(m, rootOnly(docking.ViewportInput{Pointer: held(900, 300, entity.Vec{X: 500})}))

	// Assert
	require.NotNil(t, out.Ghost)
	assert.True(t, out.Ghost.Native)
	require.Len(t, m.Detached(), 1)
	ghostVP := m.Detached()[0].Viewport
	assert.Equal(t, ghostVP, out.Ghost.Viewport)
	require.NotNil(t, out.Payload)
	assert.True(t, out.Payload.IsWindowMove())
	assert.Equal(t, "b", shape(m.Root()))

	// Act: keep moving, the window follows.
	out = run(m, rootOnly(docking.ViewportInput{Pointer: held(950, 320, entity.Vec{X: 50, Y: 20})}))

	// Assert
	require.Contains(t, commandKinds(out.Commands), port.CommandMove)
	w, ok := m.DetachedWindow(ghostVP)
	require.True(t, ok)
	assert.Equal(t, entity.Pos{X: 930, Y: 310}, w.InnerRect.Min)

	// Act: escape docks it back into the root.
	out = run(m, rootOnly(docking.ViewportInput{Pointer: held(950, 320, entity.Vec{}), Escape: true}))

	// Assert
	assert.Nil(t, out.Ghost)
	assert.Nil(t, out.Payload)
	assert.Empty(t, m.Detached())
	assert.Contains(t, commandKinds(out.Commands), port.CommandClose)
	assert.Equal(t, 2, m.Root().PaneCount())
}

func TestRunFrame_ContainedGhostUpgradesWhenLeavingViewport(t *testing.T) {
	// Arrange: the dock leaves a 100 point strip at the bottom of the
	// viewport.
	dock := entity.Rect{Max: entity.Pos{X: 800, Y: 500}}
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a", "b"}), &fakeBehavior{}, docking.DefaultOptions())
	startDrag(t, m, "a")

	// Act: ctrl keeps the ghost inside the viewport.
	out := run(m, rootOnly(docking.ViewportInput{
		DockRect:  dock,
		Pointer:   held(400, 550, entity.Vec{Y: 250}),
		Modifiers: docking.Modifiers{Ctrl: true},
	}))

	// Assert
	require.NotNil(t, out.Ghost)
	assert.False(t, out.Ghost.Native)
	require.Len(t, m.Floating(port.RootViewport), 1)
	assert.Empty(t, m.Detached())
	assert.Equal(t, "b", shape(m.Root()))

	// Act: the pointer leaves the viewport.
	out = run(m, rootOnly(docking.ViewportInput{
		DockRect:  dock,
		Pointer:   docking.PointerInput{Global: pos(1000, 300), Down: true},
		Modifiers: docking.Modifiers{Ctrl: true},
	}))

	// Assert
	require.NotNil(t, out.Ghost)
	assert.True(t, out.Ghost.Native)
	assert.Empty(t, m.Floating(port.RootViewport))
	require.Len(t, m.Detached(), 1)
	assert.Equal(t, "a", shape(m.Detached()[0].Tree))
	assert.Equal(t, entity.Pos{X: 980, Y: 290}, m.Detached()[0].InnerRect.Min)
}

func TestRunFrame_FloatingTitleDragDocksIntoRoot(t *testing.T) {
	// Arrange
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a", "b"}), &fakeBehavior{}, docking.DefaultOptions())
	id, err := m.AddFloating(port.RootViewport, entity.NewTabsTree("f", []entity.Pane{"f"}),
		entity.Vec{X: 100, Y: 100}, entity.Vec{X: 200, Y: 150})
	require.NoError(t, err)
	surface := docking.FloatingOf(port.RootViewport, id)

	// Act: grab the title band, then release over the outer left target.
	out := run(m, rootOnly(docking.ViewportInput{
		Pointer:   held(150, 105, entity.Vec{}),
		TitleDrag: &docking.TitleDrag{Surface: surface},
	}))
	require.NotNil(t, out.Payload)
	require.True(t, out.Payload.IsWindowMove())
	out = run(m, rootOnly(docking.ViewportInput{Pointer: released(46, 300, entity.Vec{X: -104, Y: 195})}))

	// Assert
	assert.Equal(t, "Horizontal[f, Tabs[a, b]]", shape(m.Root()))
	assert.Empty(t, m.Floating(port.RootViewport))
	assert.Nil(t, out.Payload)
}

func TestRunFrame_FloatingTitleDragMovesWindow(t *testing.T) {
	// Arrange
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a"}), &fakeBehavior{}, docking.DefaultOptions())
	id, err := m.AddFloating(port.RootViewport, entity.NewTabsTree("f", []entity.Pane{"f"}),
		entity.Vec{X: 100, Y: 100}, entity.Vec{X: 200, Y: 150})
	require.NoError(t, err)
	surface := docking.FloatingOf(port.RootViewport, id)

	// Act
	run(m, rootOnly(docking.ViewportInput{
		Pointer:   held(150, 105, entity.Vec{}),
		TitleDrag: &docking.TitleDrag{Surface: surface},
	}))
	run(m, rootOnly(docking.ViewportInput{
		Pointer:   held(250, 205, entity.Vec{X: 100, Y: 100}),
		TitleDrag: &docking.TitleDrag{Surface: surface},
	}))

	// Assert
	fws := m.Floating(port.RootViewport)
	require.Len(t, fws, 1)
	assert.Equal(t, entity.Vec{X: 200, Y: 200}, fws[0].Offset)
}

func TestRunFrame_OverlayPaintedWhileHovering(t *testing.T) {
	// Arrange
	m := withDetached(t, &fakeBehavior{}, nil)
	d := paneTile(t, m.Detached()[0].Tree, "d")
	run(m, docking.FrameInput{Viewports: map[port.ViewportID]docking.ViewportInput{
		detachedVP: {
			InnerRect: detachedInner,
			Pointer:   held(50, 50, entity.Vec{}),
			Drags:     []docking.DragReport{{Surface: docking.DockTreeOf(detachedVP), Tile: d}},
		},
	}})

	// Act
	out := run(m, docking.FrameInput{Viewports: map[port.ViewportID]docking.ViewportInput{
		port.RootViewport: {InnerRect: rootInner, Pointer: docking.PointerInput{Pos: pos(46, 300), Global: pos(46, 300), Down: true}},
	}})

	// Assert
	var root *docking.SurfaceOverlay
	for i := range out.Overlays {
		if out.Overlays[i].Surface == docking.DockTreeOf(port.RootViewport) {
			root = &out.Overlays[i]
		}
	}
	require.NotNil(t, root)
	require.NotNil(t, root.Paint)
	assert.True(t, root.Paint.Outer)
	require.NotNil(t, root.Final)
	assert.Equal(t, entity.KindHorizontal, root.Final.Insertion.Kind)
	require.NotNil(t, root.Preview)
}

func TestRunFrame_CloseRequestRedocksIntoRoot(t *testing.T) {
	// Arrange
	m := withDetached(t, &fakeBehavior{}, nil)

	// Act
	out := run(m, docking.FrameInput{Viewports: map[port.ViewportID]docking.ViewportInput{
		port.RootViewport: {InnerRect: rootInner},
		detachedVP:        {InnerRect: detachedInner, CloseRequested: true},
	}})

	// Assert
	assert.Empty(t, m.Detached())
	assert.Equal(t, 3, m.Root().PaneCount())
	assert.Equal(t, []port.CommandKind{port.CommandCreate, port.CommandClose}, commandKinds(out.Commands))
}

func TestManager_CloseUnknownViewport(t *testing.T) {
	m := newManager(nil, &fakeBehavior{}, docking.DefaultOptions())

	err := m.CloseDetached(port.ViewportID(42))

	assert.ErrorIs(t, err, docking.ErrUnknownViewport)
}

func TestManager_CloseFloatingRedocks(t *testing.T) {
	// Arrange
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a"}), &fakeBehavior{}, docking.DefaultOptions())
	id, err := m.AddFloating(port.RootViewport, entity.NewTabsTree("f", []entity.Pane{"f"}), entity.Vec{}, entity.Vec{X: 100, Y: 100})
	require.NoError(t, err)

	// Act
	err = m.CloseFloating(docking.FloatingOf(port.RootViewport, id))

	// Assert
	require.NoError(t, err)
	assert.Empty(t, m.Floating(port.RootViewport))
	assert.Equal(t, 2, m.Root().PaneCount())
	assert.ErrorIs(t, m.CloseFloating(docking.FloatingOf(port.RootViewport, id)), docking.ErrUnknownSurface)
}

func TestManager_CollectGarbage(t *testing.T) {
	// Arrange
	behavior := &fakeBehavior{drop: map[string]bool{"b": true}}
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a", "b"}), behavior, docking.DefaultOptions())

	// Act
	removed := m.CollectGarbage()

	// Assert
	assert.Equal(t, 1, removed)
	assert.Equal(t, "a", shape(m.Root()))
}

func TestRunFrame_IntegrityAudit(t *testing.T) {
	broken := func(t *testing.T) *entity.Tree {
		tree := mustTree(t, "root", hsplit(pane("a"), pane("b")))
		_, ok := tree.Tiles.Remove(paneTile(t, tree, "a"))
		require.True(t, ok)
		return tree
	}

	t.Run("logs once per issue set", func(t *testing.T) {
		opts := docking.DefaultOptions()
		opts.DebugIntegrity = true
		m := newManager(broken(t), &fakeBehavior{}, opts)

		run(m, rootOnly(docking.ViewportInput{}))
		first := len(m.EventLog())
		run(m, rootOnly(docking.ViewportInput{}))

		assert.Positive(t, first)
		assert.Equal(t, first, len(m.EventLog()))
	})

	t.Run("panics when asked to", func(t *testing.T) {
		opts := docking.DefaultOptions()
		opts.DebugIntegrity = true
		opts.DebugIntegrityPanic = true
		m := newManager(broken(t), &fakeBehavior{}, opts)

		assert.Panics(t, func() { m.RunFrame(context.Background(), rootOnly(docking.ViewportInput{})) })
	})
}

func TestRunFrame_EventLogRespectsCapacity(t *testing.T) {
	// Arrange
	opts := docking.DefaultOptions()
	opts.DebugEventLog = true
	opts.DebugEventLogCapacity = 3
	m := newManager(entity.NewTabsTree("root", []entity.Pane{"a", "b"}), &fakeBehavior{}, opts)

	// Act
	for range 4 {
		startDrag(t, m, "a")
		run(m, rootOnly(docking.ViewportInput{}))
	}

	// Assert
	log := m.EventLog()
	assert.Len(t, log, 3)
	assert.True(t, strings.HasPrefix(log[0], "[frame "))
	m.ClearEventLog()
	assert.Empty(t, m.EventLog())
}
