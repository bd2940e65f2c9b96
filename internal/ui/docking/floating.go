package docking

import (
	"slices"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// FloatingWindow is a tree drawn as a movable window inside a viewport.
type FloatingWindow struct {
	ID   FloatingID
	Tree *entity.Tree
	// Offset is the window's top-left relative to the dock rect.
	Offset entity.Vec
	// Size is the body below the title band.
	Size      entity.Vec
	Collapsed bool
}

// TitleRect is the draggable band on top of the window.
func (w *FloatingWindow) TitleRect(dock entity.Rect, titleHeight float64) entity.Rect {
	return entity.RectFromMinSize(dock.Min.Add(w.Offset), entity.Vec{X: w.Size.X, Y: titleHeight})
}

// FrameRect is the full hit area: the title band plus the body unless
// collapsed.
func (w *FloatingWindow) FrameRect(dock entity.Rect, titleHeight float64) entity.Rect {
	if w.Collapsed {
		return w.TitleRect(dock, titleHeight)
	}
	return entity.RectFromMinSize(dock.Min.Add(w.Offset), entity.Vec{X: w.Size.X, Y: titleHeight + w.Size.Y})
}

// ContentRect is where the window's tree is laid out. Collapsed windows
// have none.
func (w *FloatingWindow) ContentRect(dock entity.Rect, titleHeight float64) (entity.Rect, bool) {
	if w.Collapsed {
		return entity.Rect{}, false
	}
	origin := dock.Min.Add(w.Offset).Add(entity.Vec{Y: titleHeight})
	return entity.RectFromMinSize(origin, w.Size), true
}

// floatingManager holds the floating windows of one viewport, back to
// front in z.
type floatingManager struct {
	windows map[FloatingID]*FloatingWindow
	z       []FloatingID
}

func newFloatingManager() *floatingManager {
	return &floatingManager{windows: make(map[FloatingID]*FloatingWindow)}
}

func (fm *floatingManager) add(w *FloatingWindow) {
	fm.windows[w.ID] = w
	fm.z = append(fm.z, w.ID)
}

func (fm *floatingManager) get(id FloatingID) (*FloatingWindow, bool) {
	w, ok := fm.windows[id]
	return w, ok
}

func (fm *floatingManager) remove(id FloatingID) (*FloatingWindow, bool) {
	w, ok := fm.windows[id]
	if !ok {
		return nil, false
	}
	delete(fm.windows, id)
	fm.z = slices.DeleteFunc(fm.z, func(o FloatingID) bool { return o == id })
	return w, true
}

func (fm *floatingManager) bringToFront(id FloatingID) {
	if _, ok := fm.windows[id]; !ok {
		return
	}
	if len(fm.z) > 0 && fm.z[len(fm.z)-1] == id {
		return
	}
	fm.z = slices.DeleteFunc(fm.z, func(o FloatingID) bool { return o == id })
	fm.z = append(fm.z, id)
}

// ordered returns the windows back to front.
func (fm *floatingManager) ordered() []*FloatingWindow {
	out := make([]*FloatingWindow, 0, len(fm.z))
	for _, id := range fm.z {
		out = append(out, fm.windows[id])
	}
	return out
}

// zIndex is the window's position in the stack, 0 at the back.
func (fm *floatingManager) zIndex(id FloatingID) int {
	return slices.Index(fm.z, id)
}

// topmostAt returns the front-most window under p, skipping exclude.
func (fm *floatingManager) topmostAt(dock entity.Rect, titleHeight float64, p entity.Pos, exclude FloatingID) (*FloatingWindow, bool) {
	for i := len(fm.z) - 1; i >= 0; i-- {
		w := fm.windows[fm.z[i]]
		if w.ID == exclude {
			continue
		}
		if w.FrameRect(dock, titleHeight).Contains(p) {
			return w, true
		}
	}
	return nil, false
}

func (fm *floatingManager) len() int {
	return len(fm.windows)
}

// clampFloatingOffset keeps the title band of a window of size inside
// dock.
func clampFloatingOffset(offset, size entity.Vec, dock entity.Rect) entity.Vec {
	maxX := max(dock.Width()-size.X, 0)
	maxY := max(dock.Height()-size.Y, 0)
	return entity.Vec{X: min(max(offset.X, 0), maxX), Y: min(max(offset.Y, 0), maxY)}
}
