package docking

import (
	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

const (
	emptyTreeTitle = "Detached"
	// Minimum size of a torn-off subtree taken from its old rect.
	tearOffMinWidth  = 200
	tearOffMinHeight = 120
	// Minimum size of a ghost window.
	ghostMinWidth  = 220
	ghostMinHeight = 120
)

// tearOffGrab is where the pointer sits inside a freshly spawned window.
var tearOffGrab = entity.Vec{X: 20, Y: 10}

// fallbackSpawnPos places a window when neither the pointer nor the old
// tile rect is known.
var fallbackSpawnPos = entity.Pos{X: 64, Y: 64}

// DetachedWindow is a native viewport hosting its own dock tree.
type DetachedWindow struct {
	Viewport port.ViewportID
	Serial   uint64
	Tree     *entity.Tree
	Title    string
	// InnerRect is the last known client area in screen space.
	InnerRect entity.Rect
}

// titleForTree names a window after its first pane.
func titleForTree(tree *entity.Tree, behavior port.PaneBehavior) string {
	if tree == nil || tree.IsEmpty() {
		return emptyTreeTitle
	}
	if _, pane, ok := tree.FirstPane(); ok {
		return behavior.TabTitle(pane)
	}
	return tree.Root.String()
}

func titleForSubtree(sub *entity.SubTree, behavior port.PaneBehavior) string {
	if _, pane, ok := sub.FirstPane(); ok {
		return behavior.TabTitle(pane)
	}
	return sub.Root.String()
}

// clampToMonitors moves pos so a window of size stays on one monitor:
// the one it overlaps most, else the one nearest to pos.
func clampToMonitors(pos entity.Pos, size entity.Vec, monitors []entity.Rect) entity.Pos {
	if len(monitors) == 0 {
		return pos
	}

	rect := entity.RectFromMinSize(pos, size)
	var (
		best     entity.Rect
		bestArea float64
		found    bool
	)
	for _, m := range monitors {
		inter := rect.Intersect(m)
		if !inter.IsPositive() {
			continue
		}
		if a := inter.Area(); !found || a > bestArea {
			best, bestArea, found = m, a, true
		}
	}

	if !found {
		best = monitors[0]
		bestDist := -1.0
		for _, m := range monitors {
			clamped := entity.Pos{X: clampF(pos.X, m.Min.X, m.Max.X), Y: clampF(pos.Y, m.Min.Y, m.Max.Y)}
			if d := clamped.DistanceSq(pos); bestDist < 0 || d < bestDist {
				best, bestDist = m, d
			}
		}
	}

	maxX := max(best.Max.X-size.X, best.Min.X)
	maxY := max(best.Max.Y-size.Y, best.Min.Y)
	return entity.Pos{X: clampF(pos.X, best.Min.X, maxX), Y: clampF(pos.Y, best.Min.Y, maxY)}
}

func clampF(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
