package entity

import (
	"fmt"
	"hash/fnv"
)

// IntegrityIssues audits the structural invariants of the tree and
// returns one line per violation. An empty result means the tree is sound.
func (t *Tree) IntegrityIssues() []string {
	var issues []string

	if t.Root == NoTile {
		if t.Tiles.Len() > 0 {
			issues = append(issues, "integrity: root=None but tiles non-empty")
		}
		return issues
	}
	if !t.Tiles.Has(t.Root) {
		return append(issues, fmt.Sprintf("integrity: root %s missing", t.Root))
	}

	visited := make(map[TileID]struct{})
	parentOf := make(map[TileID]TileID)
	stack := []TileID{t.Root}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}

		tile, ok := t.Tiles.Get(id)
		if !ok {
			issues = append(issues, fmt.Sprintf("integrity: missing tile %s (reachable)", id))
			continue
		}
		if tile.IsPane() {
			continue
		}

		children := tile.Children()
		if tabs, ok := tile.Container.(*Tabs); ok && tabs.Active != NoTile {
			if tabs.ActiveIndex() < 0 {
				issues = append(issues, fmt.Sprintf("integrity: tabs %s active %s not in children=%v",
					id, tabs.Active, children))
			}
			if !t.Tiles.Has(tabs.Active) {
				issues = append(issues, fmt.Sprintf("integrity: tabs %s active %s missing tile", id, tabs.Active))
			} else if !t.Tiles.IsVisible(tabs.Active) {
				issues = append(issues, fmt.Sprintf("integrity: tabs %s active %s not visible", id, tabs.Active))
			}
		}

		local := make(map[TileID]struct{}, len(children))
		for _, c := range children {
			if _, dup := local[c]; dup {
				issues = append(issues, fmt.Sprintf("integrity: parent %s contains duplicate child %s", id, c))
			}
			local[c] = struct{}{}
		}

		for _, c := range children {
			if !t.Tiles.Has(c) {
				issues = append(issues, fmt.Sprintf("integrity: parent %s references missing child %s", id, c))
				continue
			}
			if prev, ok := parentOf[c]; ok {
				issues = append(issues, fmt.Sprintf("integrity: child %s has multiple parents %s and %s", c, prev, id))
			} else {
				parentOf[c] = id
			}
			stack = append(stack, c)
		}
	}

	if total := t.Tiles.Len(); len(visited) != total {
		issues = append(issues, fmt.Sprintf("integrity: unreachable tiles %d of %d", max(total-len(visited), 0), total))
	}

	return issues
}

// HashIssues fingerprints a set of issue lines so repeated reports of
// the same state can be suppressed.
func HashIssues(lines []string) uint64 {
	h := fnv.New64a()
	for _, l := range lines {
		_, _ = h.Write([]byte(l))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
