// Package docking orchestrates drag and drop of tiles between the root
// dock, detached native viewports and floating windows.
//
// The host calls RunFrame once per frame with what its toolkit observed.
// Every viewport is hit-tested against trees laid out for that frame
// first; structural edits are queued and applied together at the end of
// the frame, so no surface sees a tree change under it mid-frame.
package docking

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

// Manager owns every tree of a docking session. It is not safe for
// concurrent use; drive it from the UI thread.
type Manager struct {
	opts      Options
	behavior  port.PaneBehavior
	commander port.ViewportCommander
	logger    zerolog.Logger

	root     *entity.Tree
	detached map[port.ViewportID]*DetachedWindow
	floating map[port.ViewportID]*floatingManager

	nextDetachedSerial uint64
	nextFloatingID     uint64

	frame   uint64
	drag    *dragState
	payload *DockPayload
	ghost   *ghostDrag
	// moveGrab is the pointer offset inside a floating window being
	// moved by its title band.
	moveGrab entity.Vec

	pendingDrop     *PendingDrop
	pendingInternal *PendingInternalDrop
	pendingLocal    *PendingLocalDrop
	pendingTearOff  *pendingTearOff
	pendingGhost    *pendingGhost
	pendingCloses   []port.ViewportID

	inputs        map[port.ViewportID]ViewportInput
	dockRects     map[port.ViewportID]entity.Rect
	viewportRects map[port.ViewportID]entity.Rect
	monitors      []entity.Rect

	commands []port.ViewportCommand
	out      FrameOutput

	events      *eventRing
	issueHashes map[string]uint64
}

// New creates a session around the root dock tree. behavior and
// commander may be nil.
func New(root *entity.Tree, behavior port.PaneBehavior, commander port.ViewportCommander, opts Options, logger zerolog.Logger) *Manager {
	if root == nil {
		root = entity.EmptyTree("root")
	}
	if behavior == nil {
		behavior = basicBehavior{}
	}
	return &Manager{
		opts:               opts,
		behavior:           behavior,
		commander:          commander,
		logger:             logging.Component(logger, "docking"),
		root:               root,
		detached:           make(map[port.ViewportID]*DetachedWindow),
		floating:           make(map[port.ViewportID]*floatingManager),
		nextDetachedSerial: 1,
		nextFloatingID:     1,
		drag:               newDragState(),
		dockRects:          make(map[port.ViewportID]entity.Rect),
		viewportRects:      make(map[port.ViewportID]entity.Rect),
		events:             newEventRing(opts.eventLogCapacity()),
		issueHashes:        make(map[string]uint64),
	}
}

// NewFromWorkspace creates a session from a preset with detached
// windows. Create commands for them go out with the first frame.
func NewFromWorkspace(ws *entity.WorkspaceLayout, behavior port.PaneBehavior, commander port.ViewportCommander, opts Options, logger zerolog.Logger) *Manager {
	m := New(ws.Root, behavior, commander, opts, logger)
	for i, d := range ws.Detached {
		if d.Tree == nil {
			continue
		}
		rect := entity.RectFromMinSize(entity.Pos{X: 64 + 32*float64(i), Y: 64 + 32*float64(i)}, m.opts.detachedSize())
		if d.InnerRect != nil {
			rect = *d.InnerRect
		}
		w := m.addDetached(d.Tree, rect)
		if d.Title != "" {
			w.Title = d.Title
			m.emit(port.ViewportCommand{Kind: port.CommandSetTitle, Viewport: w.Viewport, Title: w.Title})
		}
	}
	return m
}

// basicBehavior is used when the host supplies none.
type basicBehavior struct{}

func (basicBehavior) TabTitle(p entity.Pane) string { return fmt.Sprint(p) }
func (basicBehavior) Style(string) entity.LayoutStyle {
	return entity.DefaultLayoutStyle()
}
func (basicBehavior) AllowInsertion(*entity.Tree, entity.InsertionPoint) bool { return true }
func (basicBehavior) IsTabClosable(*entity.Tree, entity.TileID) bool         { return true }
func (basicBehavior) RetainPane(entity.Pane) bool                            { return true }
func (basicBehavior) OnEdit(*entity.Tree, port.EditAction)                   {}

// Root returns the root dock tree.
func (m *Manager) Root() *entity.Tree { return m.root }

// Options returns the active options.
func (m *Manager) Options() Options { return m.opts }

// SetOptions replaces the options, e.g. after a config reload.
func (m *Manager) SetOptions(opts Options) {
	m.opts = opts
	m.events.capacity = opts.eventLogCapacity()
}

// Frame is the number of frames run so far.
func (m *Manager) Frame() uint64 { return m.frame }

// Payload returns the drag in flight.
func (m *Manager) Payload() (DockPayload, bool) {
	if m.payload == nil {
		return DockPayload{}, false
	}
	return *m.payload, true
}

// Detached returns the detached windows ordered by viewport.
func (m *Manager) Detached() []*DetachedWindow {
	out := make([]*DetachedWindow, 0, len(m.detached))
	for _, vp := range m.detachedOrder() {
		out = append(out, m.detached[vp])
	}
	return out
}

// DetachedWindow returns one detached window.
func (m *Manager) DetachedWindow(vp port.ViewportID) (*DetachedWindow, bool) {
	w, ok := m.detached[vp]
	return w, ok
}

// Floating returns the floating windows of vp, back to front.
func (m *Manager) Floating(vp port.ViewportID) []*FloatingWindow {
	fm, ok := m.floating[vp]
	if !ok {
		return nil
	}
	return fm.ordered()
}

// EventLog returns the debug event ring, oldest first. Empty unless
// DebugEventLog is set.
func (m *Manager) EventLog() []string { return m.events.snapshot() }

// ClearEventLog empties the debug event ring.
func (m *Manager) ClearEventLog() { m.events.clear() }

// TreeFor returns the tree of a surface.
func (m *Manager) TreeFor(s DockSurface) (*entity.Tree, bool) {
	t := m.treeFor(s)
	return t, t != nil
}

func (m *Manager) treeFor(s DockSurface) *entity.Tree {
	if s.IsFloating() {
		if fm, ok := m.floating[s.Viewport]; ok {
			if w, ok := fm.get(s.Floating); ok {
				return w.Tree
			}
		}
		return nil
	}
	if s.Viewport == port.RootViewport {
		return m.root
	}
	if w, ok := m.detached[s.Viewport]; ok {
		return w.Tree
	}
	return nil
}

func (m *Manager) floatingWindow(s DockSurface) (*FloatingWindow, bool) {
	fm, ok := m.floating[s.Viewport]
	if !ok {
		return nil, false
	}
	return fm.get(s.Floating)
}

func (m *Manager) viewportExists(vp port.ViewportID) bool {
	if vp == port.RootViewport {
		return true
	}
	_, ok := m.detached[vp]
	return ok
}

func (m *Manager) detachedOrder() []port.ViewportID {
	ids := make([]port.ViewportID, 0, len(m.detached))
	for vp := range m.detached {
		ids = append(ids, vp)
	}
	slices.Sort(ids)
	return ids
}

func (m *Manager) style(tree *entity.Tree) entity.LayoutStyle {
	return m.behavior.Style(tree.ID)
}

// titleHeight is the floating title band height of a viewport.
func (m *Manager) titleHeight(vp port.ViewportID) float64 {
	if t := m.treeFor(DockTreeOf(vp)); t != nil {
		return m.style(t).TabBarHeight
	}
	return entity.DefaultLayoutStyle().TabBarHeight
}

// AddFloating opens tree as a floating window in vp. The offset is
// relative to the viewport's dock rect.
func (m *Manager) AddFloating(vp port.ViewportID, tree *entity.Tree, offset, size entity.Vec) (FloatingID, error) {
	if !m.viewportExists(vp) {
		return NoFloating, fmt.Errorf("add floating window to %s: %w", vp, ErrUnknownViewport)
	}
	w := m.addFloating(vp, tree, offset, size)
	return w.ID, nil
}

func (m *Manager) addFloating(vp port.ViewportID, tree *entity.Tree, offset, size entity.Vec) *FloatingWindow {
	id := FloatingID(m.nextFloatingID)
	m.nextFloatingID++
	fm, ok := m.floating[vp]
	if !ok {
		fm = newFloatingManager()
		m.floating[vp] = fm
	}
	w := &FloatingWindow{ID: id, Tree: tree, Offset: offset, Size: size}
	fm.add(w)
	m.logEvent("floating CREATE %s/floating-%d panes=%d", vp, id, tree.PaneCount())
	return w
}

// SetFloatingCollapsed folds a floating window down to its title band.
func (m *Manager) SetFloatingCollapsed(s DockSurface, collapsed bool) error {
	w, ok := m.floatingWindow(s)
	if !ok {
		return fmt.Errorf("collapse %s: %w", s, ErrUnknownSurface)
	}
	w.Collapsed = collapsed
	return nil
}

// BringToFront raises a floating window.
func (m *Manager) BringToFront(s DockSurface) {
	if fm, ok := m.floating[s.Viewport]; ok {
		fm.bringToFront(s.Floating)
	}
}

// CloseFloating closes a floating window and docks its tree back into
// the dock tree of the same viewport.
func (m *Manager) CloseFloating(s DockSurface) error {
	fm, ok := m.floating[s.Viewport]
	if !ok {
		return fmt.Errorf("close %s: %w", s, ErrUnknownSurface)
	}
	w, ok := fm.remove(s.Floating)
	if !ok {
		return fmt.Errorf("close %s: %w", s, ErrUnknownSurface)
	}
	m.redock(w.Tree, m.treeFor(DockTreeOf(s.Viewport)))
	m.afterTreeChanged(DockTreeOf(s.Viewport))
	return nil
}

// CloseDetached closes a detached viewport and docks its tree and its
// floating windows back into the root.
func (m *Manager) CloseDetached(vp port.ViewportID) error {
	w, ok := m.detached[vp]
	if !ok {
		return fmt.Errorf("close %s: %w", vp, ErrUnknownViewport)
	}
	for _, fw := range m.Floating(vp) {
		m.redock(fw.Tree, m.root)
	}
	delete(m.floating, vp)
	m.redock(w.Tree, m.root)
	m.removeDetached(vp)
	return nil
}

func (m *Manager) redock(from, into *entity.Tree) {
	if from == nil || from.IsEmpty() || into == nil {
		return
	}
	into.InsertSubtreeAt(entity.NewSubTree(from.Root, from.Tiles), nil)
	into.EnsureActiveTabs()
	m.behavior.OnEdit(into, port.EditTileDropped)
}

func (m *Manager) addDetached(tree *entity.Tree, rect entity.Rect) *DetachedWindow {
	serial := m.nextDetachedSerial
	m.nextDetachedSerial++
	w := &DetachedWindow{
		Viewport:  port.ViewportID(serial),
		Serial:    serial,
		Tree:      tree,
		Title:     titleForTree(tree, m.behavior),
		InnerRect: rect,
	}
	m.detached[w.Viewport] = w
	m.viewportRects[w.Viewport] = rect
	m.emit(port.ViewportCommand{Kind: port.CommandCreate, Viewport: w.Viewport, Title: w.Title, InnerRect: rect})
	m.logEvent("detached CREATE %s title=%q", w.Viewport, w.Title)
	return w
}

// spawnDetached opens sub in a new native window whose client area
// starts at pos, clamped to the monitors.
func (m *Manager) spawnDetached(sub *entity.SubTree, pos entity.Pos, size entity.Vec) *DetachedWindow {
	pos = clampToMonitors(pos, size, m.monitors)
	tree := entity.EmptyTree(fmt.Sprintf("detached-%d", m.nextDetachedSerial))
	tree.InsertSubtreeAt(sub, nil)
	tree.EnsureActiveTabs()
	return m.addDetached(tree, entity.RectFromMinSize(pos, size))
}

func (m *Manager) removeDetached(vp port.ViewportID) {
	if _, ok := m.detached[vp]; !ok {
		return
	}
	delete(m.detached, vp)
	delete(m.viewportRects, vp)
	delete(m.dockRects, vp)
	if fm, ok := m.floating[vp]; ok && fm.len() == 0 {
		delete(m.floating, vp)
	}
	m.emit(port.ViewportCommand{Kind: port.CommandClose, Viewport: vp})
	m.logEvent("detached CLOSE %s", vp)
}

// afterTreeChanged updates state derived from a surface's tree: empty
// detached and floating hosts close, detached titles follow content.
func (m *Manager) afterTreeChanged(s DockSurface) {
	tree := m.treeFor(s)
	if tree == nil {
		return
	}
	tree.Simplify(entity.DefaultSimplificationOptions())
	tree.EnsureActiveTabs()

	if s.IsFloating() {
		if tree.IsEmpty() {
			if fm, ok := m.floating[s.Viewport]; ok {
				fm.remove(s.Floating)
				m.logEvent("floating CLOSE %s (empty)", s)
			}
		}
		return
	}
	if s.Viewport == port.RootViewport {
		return
	}
	w := m.detached[s.Viewport]
	if tree.IsEmpty() && m.floatingCount(s.Viewport) == 0 {
		m.removeDetached(s.Viewport)
		return
	}
	if title := titleForTree(tree, m.behavior); title != w.Title {
		w.Title = title
		m.emit(port.ViewportCommand{Kind: port.CommandSetTitle, Viewport: w.Viewport, Title: title})
	}
}

func (m *Manager) floatingCount(vp port.ViewportID) int {
	if fm, ok := m.floating[vp]; ok {
		return fm.len()
	}
	return 0
}

func (m *Manager) emit(cmd port.ViewportCommand) {
	m.commands = append(m.commands, cmd)
}

// flushCommands forwards queued commands to the commander and records
// them in the frame output.
func (m *Manager) flushCommands(ctx context.Context) {
	for _, cmd := range m.commands {
		m.out.Commands = append(m.out.Commands, cmd)
		if m.commander == nil {
			continue
		}
		if err := m.commander.Send(ctx, cmd); err != nil {
			m.logger.Warn().Err(err).Str("command", cmd.String()).Msg("viewport command failed")
		}
	}
	m.commands = nil
}

// logEvent writes a debug line to the logger and, when enabled, to the
// event ring.
func (m *Manager) logEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	m.logger.Debug().Uint64("frame", m.frame).Msg(msg)
	if m.opts.DebugEventLog {
		m.events.push(m.frame, msg)
	}
}
