package entity

import (
	"fmt"
	"sync/atomic"
)

// TileID identifies a tile. Ids are process-unique so fragments moved
// between trees never collide with the tiles already there.
type TileID uint64

// NoTile is the zero id, never allocated.
const NoTile TileID = 0

var lastTileID atomic.Uint64

// NewTileID allocates a fresh process-unique id.
func NewTileID() TileID {
	return TileID(lastTileID.Add(1))
}

// reserveTileID makes sure future allocations never return id.
// Restored snapshots carry ids minted by a previous process.
func reserveTileID(id TileID) {
	for {
		cur := lastTileID.Load()
		if uint64(id) <= cur || lastTileID.CompareAndSwap(cur, uint64(id)) {
			return
		}
	}
}

func (id TileID) String() string {
	return fmt.Sprintf("Tile(%d)", uint64(id))
}

// Pane is application-owned leaf content. The engine never inspects it.
type Pane any

// Tile is either a leaf pane or a container.
// A tile with a nil Container is a pane.
type Tile struct {
	Pane      Pane
	Container Container
}

// NewPaneTile wraps an application pane.
func NewPaneTile(p Pane) *Tile {
	return &Tile{Pane: p}
}

// NewContainerTile wraps a container.
func NewContainerTile(c Container) *Tile {
	return &Tile{Container: c}
}

// IsPane reports whether the tile is a leaf.
func (t *Tile) IsPane() bool {
	return t.Container == nil
}

// IsContainer reports whether the tile has children.
func (t *Tile) IsContainer() bool {
	return t.Container != nil
}

// Kind returns the container kind, or KindPane for leaves.
func (t *Tile) Kind() ContainerKind {
	if t.Container == nil {
		return KindPane
	}
	return t.Container.Kind()
}

// Children returns the container children, nil for panes.
func (t *Tile) Children() []TileID {
	if t.Container == nil {
		return nil
	}
	return t.Container.Children()
}

// Clone copies the tile and its container so the copy can be mutated
// independently. Pane payloads are shared.
func (t *Tile) Clone() *Tile {
	if t.Container == nil {
		return &Tile{Pane: t.Pane}
	}
	return &Tile{Container: t.Container.Clone()}
}
