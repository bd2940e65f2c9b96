package docking

import (
	"fmt"

	"github.com/bnema/dockyard/internal/domain/entity"
)

type surfaceTree struct {
	surface DockSurface
	tree    *entity.Tree
}

// surfaces lists every tree of the session in frame order.
func (m *Manager) surfaces() []surfaceTree {
	var out []surfaceTree
	for _, vp := range m.viewportOrder() {
		if tree := m.treeFor(DockTreeOf(vp)); tree != nil {
			out = append(out, surfaceTree{surface: DockTreeOf(vp), tree: tree})
		}
		for _, w := range m.Floating(vp) {
			out = append(out, surfaceTree{surface: FloatingOf(vp, w.ID), tree: w.Tree})
		}
	}
	return out
}

// auditIntegrity logs each tree's structural problems once per distinct
// set of issues and panics when configured to.
func (m *Manager) auditIntegrity() {
	for _, st := range m.surfaces() {
		key := st.surface.String()
		issues := st.tree.IntegrityIssues()
		if len(issues) == 0 {
			delete(m.issueHashes, key)
			continue
		}
		h := entity.HashIssues(issues)
		if prev, ok := m.issueHashes[key]; ok && prev == h {
			continue
		}
		m.issueHashes[key] = h

		for _, line := range issues {
			m.logger.Error().Str("surface", key).Str("tree", st.tree.ID).Msg(line)
			m.events.push(m.frame, fmt.Sprintf("%s %s", key, line))
		}
		m.logger.Error().Str("surface", key).Msg(st.tree.DebugSummary(64))

		if m.opts.DebugIntegrityPanic {
			panic(fmt.Sprintf("docking: integrity violation on %s: %s", key, issues[0]))
		}
	}
}

// CollectGarbage removes panes the behaviour no longer retains from
// every tree and closes hosts left empty. Returns the number of tiles
// removed.
func (m *Manager) CollectGarbage() int {
	removed := 0
	for _, st := range m.surfaces() {
		n := st.tree.GC(func(_ entity.TileID, p entity.Pane) bool { return m.behavior.RetainPane(p) })
		if n == 0 {
			continue
		}
		removed += n
		m.afterTreeChanged(st.surface)
	}
	if removed > 0 {
		m.logEvent("gc removed %d tiles", removed)
	}
	return removed
}
