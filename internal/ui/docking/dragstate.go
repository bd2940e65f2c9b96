package docking

import (
	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// dragState reconciles the pointer across viewports into one global
// position and owns the drag session.
type dragState struct {
	session dragSession

	lastPointerGlobal *entity.Pos
	lastModifiers     Modifiers
	anyDown           bool
	anyReleased       bool

	lastInteractUpdateFrame  uint64
	lastDeltaIntegratedFrame uint64
	lastHoveredViewport      *port.ViewportID
	lastViewportInnerMin     map[port.ViewportID]entity.Pos
}

func newDragState() *dragState {
	return &dragState{lastViewportInnerMin: make(map[port.ViewportID]entity.Pos)}
}

func (d *dragState) beginFrame() {
	d.session.beginFrame()
	d.anyDown = false
	d.anyReleased = false
}

func (d *dragState) endFrame(frame uint64) (bool, string) {
	return d.session.endFrame(frame)
}

// updatePointer folds one viewport's pointer into the global estimate.
// allowInteract is false while the viewport itself is being moved, since
// its local positions then lag behind the OS.
func (d *dragState) updatePointer(frame uint64, vp port.ViewportID, in ViewportInput, allowInteract bool) {
	p := in.Pointer
	d.anyDown = d.anyDown || p.Down
	d.anyReleased = d.anyReleased || p.Released

	viewportMoved := false
	if prev, ok := d.lastViewportInnerMin[vp]; ok {
		viewportMoved = prev != in.InnerRect.Min
	}
	d.lastViewportInnerMin[vp] = in.InnerRect.Min

	if p.Global != nil {
		g := *p.Global
		d.lastPointerGlobal = &g
		d.lastInteractUpdateFrame = frame
		return
	}

	moved := viewportMoved || !p.Delta.IsZero() || (p.Motion != nil && !p.Motion.IsZero())

	if allowInteract && (moved || d.lastPointerGlobal == nil) && p.Pos != nil {
		g := in.InnerRect.Min.Add(entity.Vec{X: p.Pos.X, Y: p.Pos.Y})
		d.lastPointerGlobal = &g
		d.lastInteractUpdateFrame = frame
		if d.lastHoveredViewport == nil {
			v := vp
			d.lastHoveredViewport = &v
		}
		return
	}

	if d.lastInteractUpdateFrame == frame || d.lastPointerGlobal == nil {
		return
	}

	var delta entity.Vec
	switch {
	case p.Motion != nil:
		delta = *p.Motion
	case allowInteract:
		delta = p.Delta
	}
	if delta.IsZero() || d.lastDeltaIntegratedFrame == frame {
		return
	}
	d.lastDeltaIntegratedFrame = frame
	g := d.lastPointerGlobal.Add(delta)
	d.lastPointerGlobal = &g
}

func (d *dragState) pointerGlobal() (entity.Pos, bool) {
	if d.lastPointerGlobal == nil {
		return entity.Pos{}, false
	}
	return *d.lastPointerGlobal, true
}

func (d *dragState) observe(frame uint64, source string) string {
	return d.session.observeActive(frame, source)
}

func (d *dragState) takeReleaseAction(frame uint64, kind string) (bool, string) {
	return d.session.takeReleaseAction(frame, kind)
}
