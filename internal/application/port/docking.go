package port

import (
	"context"
	"fmt"

	"github.com/bnema/dockyard/internal/domain/entity"
)

//go:generate mockgen -source=docking.go -destination=mocks/mock_docking.go -package=mock_port

// ViewportID identifies a native top-level window. RootViewport is the
// window hosting the primary dock.
type ViewportID uint64

const RootViewport ViewportID = 0

func (id ViewportID) String() string {
	if id == RootViewport {
		return "root"
	}
	return fmt.Sprintf("viewport-%d", uint64(id))
}

// EditAction names a structural edit reported through PaneBehavior.OnEdit.
type EditAction int

const (
	EditTabSelected EditAction = iota
	EditTileDragged
	EditTileDropped
	EditTileClosed
	EditTileResized
)

func (a EditAction) String() string {
	switch a {
	case EditTabSelected:
		return "tab_selected"
	case EditTileDragged:
		return "tile_dragged"
	case EditTileDropped:
		return "tile_dropped"
	case EditTileClosed:
		return "tile_closed"
	case EditTileResized:
		return "tile_resized"
	default:
		return "unknown"
	}
}

// PaneBehavior is the application side of a docking session. Every
// method except OnEdit must be free of side effects.
type PaneBehavior interface {
	// TabTitle labels a pane's tab. The first pane's title also names
	// detached windows.
	TabTitle(pane entity.Pane) string
	// Style returns chrome sizing for the tree with the given id.
	Style(treeID string) entity.LayoutStyle
	// AllowInsertion vetoes splits and merges beyond container flags.
	AllowInsertion(tree *entity.Tree, ins entity.InsertionPoint) bool
	// IsTabClosable reports whether tile may be closed by the user.
	IsTabClosable(tree *entity.Tree, tile entity.TileID) bool
	// RetainPane is the garbage collection policy.
	RetainPane(pane entity.Pane) bool
	// OnEdit fires after a structural edit of tree.
	OnEdit(tree *entity.Tree, action EditAction)
}

// CommandKind is the verb of a ViewportCommand.
type CommandKind int

const (
	CommandCreate CommandKind = iota
	CommandClose
	CommandMove
	CommandFocus
	CommandSetTitle
)

func (k CommandKind) String() string {
	switch k {
	case CommandCreate:
		return "create"
	case CommandClose:
		return "close"
	case CommandMove:
		return "move"
	case CommandFocus:
		return "focus"
	case CommandSetTitle:
		return "set_title"
	default:
		return "unknown"
	}
}

// ViewportCommand asks the host windowing system to act on a native
// window. InnerRect is in screen space and only meaningful for create
// and move.
type ViewportCommand struct {
	Kind      CommandKind
	Viewport  ViewportID
	Title     string
	InnerRect entity.Rect
}

func (c ViewportCommand) String() string {
	switch c.Kind {
	case CommandCreate, CommandMove:
		return fmt.Sprintf("%s %s %q at (%.0f,%.0f) %.0fx%.0f", c.Kind, c.Viewport, c.Title,
			c.InnerRect.Min.X, c.InnerRect.Min.Y, c.InnerRect.Width(), c.InnerRect.Height())
	case CommandSetTitle:
		return fmt.Sprintf("%s %s %q", c.Kind, c.Viewport, c.Title)
	default:
		return fmt.Sprintf("%s %s", c.Kind, c.Viewport)
	}
}

// ViewportCommander forwards viewport commands to the host toolkit.
type ViewportCommander interface {
	Send(ctx context.Context, cmd ViewportCommand) error
}

// PaneRegistry maps panes to the stable ids stored in layout snapshots.
type PaneRegistry interface {
	PaneID(pane entity.Pane) string
	Pane(id string) (entity.Pane, bool)
}

// LayoutHost is a live docking session that can be captured and
// replaced wholesale.
type LayoutHost interface {
	SnapshotLayout(registry PaneRegistry) entity.LayoutSnapshot
	// RestoreLayout replaces every host. On error the live layout is
	// left untouched.
	RestoreLayout(ctx context.Context, snap entity.LayoutSnapshot, registry PaneRegistry) error
}
