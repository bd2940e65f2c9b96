package docking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/entity"
)

func TestDragSession_OneReleasePerFrame(t *testing.T) {
	// Arrange
	var s dragSession
	s.beginFrame()
	line := s.observeActive(1, "tiles")
	require.Equal(t, "session START id=1 source=tiles", line)

	// Act
	first, _ := s.takeReleaseAction(2, "cross-viewport")
	second, msg := s.takeReleaseAction(2, "local")
	next, _ := s.takeReleaseAction(3, "local")

	// Assert
	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, "session RELEASE ignored id=1 kind=local", msg)
	assert.True(t, next)
}

func TestDragSession_GuardsReleasesWithoutSession(t *testing.T) {
	var s dragSession

	first, msg := s.takeReleaseAction(5, "tear-off")
	second, _ := s.takeReleaseAction(5, "internal")

	assert.True(t, first)
	assert.Equal(t, "session RELEASE kind=tear-off (no active session)", msg)
	assert.False(t, second)
}

func TestDragSession_EndsWhenUnobserved(t *testing.T) {
	// Arrange
	var s dragSession
	s.beginFrame()
	s.observeActive(3, "pointer")
	ended, _ := s.endFrame(3)
	require.False(t, ended)

	// Act
	s.beginFrame()
	ended, line := s.endFrame(4)

	// Assert
	assert.True(t, ended)
	assert.Equal(t, "session END id=1 started_frame=3 end_frame=4", line)
	assert.False(t, s.isActive())

	s.beginFrame()
	assert.Equal(t, "session START id=2 source=ghost", s.observeActive(5, "ghost"))
}

func TestEventRing_DropsOldest(t *testing.T) {
	r := newEventRing(2)

	r.push(1, "a")
	r.push(2, "b")
	r.push(3, "c")

	assert.Equal(t, []string{"[frame 2] b", "[frame 3] c"}, r.snapshot())
	r.clear()
	assert.Empty(t, r.snapshot())
}

func TestOptions_EventLogCapacityIsClamped(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: 0, want: minEventLogCapacity},
		{in: -3, want: minEventLogCapacity},
		{in: 50, want: 50},
		{in: 1 << 20, want: maxEventLogCapacity},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Options{DebugEventLogCapacity: tt.in}.eventLogCapacity())
	}
}

func TestOptions_WindowMoveDockingGate(t *testing.T) {
	o := DefaultOptions()
	assert.True(t, o.WindowMoveDockingEnabled(false))
	assert.False(t, o.WindowMoveDockingEnabled(true))

	o.ConfigDockingWithShift = true
	assert.False(t, o.WindowMoveDockingEnabled(false))
	assert.True(t, o.WindowMoveDockingEnabled(true))
}

func TestClampToMonitors(t *testing.T) {
	left := entity.Rect{Max: entity.Pos{X: 1920, Y: 1080}}
	right := entity.Rect{Min: entity.Pos{X: 1920}, Max: entity.Pos{X: 3840, Y: 1080}}
	size := entity.Vec{X: 400, Y: 300}

	tests := []struct {
		name     string
		pos      entity.Pos
		monitors []entity.Rect
		want     entity.Pos
	}{
		{name: "no monitors", pos: entity.Pos{X: -500, Y: -500}, monitors: nil, want: entity.Pos{X: -500, Y: -500}},
		{name: "inside", pos: entity.Pos{X: 100, Y: 100}, monitors: []entity.Rect{left, right}, want: entity.Pos{X: 100, Y: 100}},
		{name: "overhang right edge", pos: entity.Pos{X: 3700, Y: 100}, monitors: []entity.Rect{left, right}, want: entity.Pos{X: 3440, Y: 100}},
		{name: "straddling picks larger overlap", pos: entity.Pos{X: 1800, Y: 100}, monitors: []entity.Rect{left, right}, want: entity.Pos{X: 1920, Y: 100}},
		{name: "off screen picks nearest", pos: entity.Pos{X: 5000, Y: 2000}, monitors: []entity.Rect{left, right}, want: entity.Pos{X: 3440, Y: 780}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampToMonitors(tt.pos, size, tt.monitors))
		})
	}
}

func TestFloatingManager_ZOrder(t *testing.T) {
	// Arrange
	fm := newFloatingManager()
	for id := FloatingID(1); id <= 3; id++ {
		fm.add(&FloatingWindow{ID: id, Tree: entity.EmptyTree("f"), Offset: entity.Vec{X: 10, Y: 10}, Size: entity.Vec{X: 100, Y: 100}})
	}
	dock := entity.Rect{Max: entity.Pos{X: 800, Y: 600}}
	p := entity.Pos{X: 50, Y: 50}

	// Act
	fm.bringToFront(1)
	top, ok := fm.topmostAt(dock, 24, p, NoFloating)
	require.True(t, ok)
	under, ok := fm.topmostAt(dock, 24, p, 1)
	require.True(t, ok)

	// Assert
	assert.Equal(t, FloatingID(1), top.ID)
	assert.Equal(t, FloatingID(3), under.ID)
	assert.Equal(t, 0, fm.zIndex(2))
	assert.Equal(t, 2, fm.zIndex(1))

	_, ok = fm.remove(3)
	require.True(t, ok)
	assert.Equal(t, 2, fm.len())
	_, ok = fm.topmostAt(dock, 24, entity.Pos{X: 500, Y: 500}, NoFloating)
	assert.False(t, ok)
}

func TestFloatingWindow_CollapsedHitsOnlyTitle(t *testing.T) {
	dock := entity.Rect{Min: entity.Pos{X: 0, Y: 30}, Max: entity.Pos{X: 800, Y: 600}}
	w := &FloatingWindow{Offset: entity.Vec{X: 100, Y: 100}, Size: entity.Vec{X: 200, Y: 150}, Collapsed: true}

	assert.Equal(t, entity.Rect{Min: entity.Pos{X: 100, Y: 130}, Max: entity.Pos{X: 300, Y: 154}}, w.FrameRect(dock, 24))
	_, ok := w.ContentRect(dock, 24)
	assert.False(t, ok)

	w.Collapsed = false
	r, ok := w.ContentRect(dock, 24)
	require.True(t, ok)
	assert.Equal(t, entity.Rect{Min: entity.Pos{X: 100, Y: 154}, Max: entity.Pos{X: 300, Y: 304}}, r)
}

func TestClampFloatingOffset(t *testing.T) {
	dock := entity.Rect{Max: entity.Pos{X: 800, Y: 600}}
	size := entity.Vec{X: 200, Y: 100}

	assert.Equal(t, entity.Vec{X: 0, Y: 0}, clampFloatingOffset(entity.Vec{X: -50, Y: -10}, size, dock))
	assert.Equal(t, entity.Vec{X: 600, Y: 500}, clampFloatingOffset(entity.Vec{X: 900, Y: 900}, size, dock))
	assert.Equal(t, entity.Vec{X: 0, Y: 0}, clampFloatingOffset(entity.Vec{X: 10, Y: 10}, entity.Vec{X: 1000, Y: 1000}, dock))
}
