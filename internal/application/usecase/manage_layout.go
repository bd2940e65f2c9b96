package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

var (
	// ErrNothingToResize is returned when no Linear ancestor lies on the
	// requested axis with a neighbour in the requested direction.
	ErrNothingToResize = errors.New("nothing to resize")
	// ErrTabNotClosable is returned when the behaviour vetoes a close.
	ErrTabNotClosable = errors.New("tab is not closable")
)

const defaultSplitFraction = 0.5

// ManageLayoutUseCase performs user-initiated edits on a docking tree
// outside the frame loop.
type ManageLayoutUseCase struct {
	behavior port.PaneBehavior
}

// NewManageLayoutUseCase creates a layout editing use case. behavior may
// be nil, in which case every tab is closable and no edits are reported.
func NewManageLayoutUseCase(behavior port.PaneBehavior) *ManageLayoutUseCase {
	return &ManageLayoutUseCase{behavior: behavior}
}

func (uc *ManageLayoutUseCase) notify(tree *entity.Tree, action port.EditAction) {
	if uc.behavior != nil {
		uc.behavior.OnEdit(tree, action)
	}
}

// SplitInput contains parameters for splitting a tile.
type SplitInput struct {
	Tree      *entity.Tree
	Target    entity.TileID
	Direction entity.SplitDirection
	Pane      entity.Pane
	// Fraction of the target's space given to the new pane (default 0.5).
	Fraction float64
}

// SplitOutput contains the result of a split.
type SplitOutput struct {
	NewTile entity.TileID
	Parent  entity.TileID
}

// Split places a new pane next to the target.
func (uc *ManageLayoutUseCase) Split(ctx context.Context, input SplitInput) (*SplitOutput, error) {
	log := logging.FromContext(ctx)
	if input.Tree == nil {
		return nil, fmt.Errorf("tree is required")
	}
	fraction := input.Fraction
	if fraction == 0 {
		fraction = defaultSplitFraction
	}
	if fraction <= 0 || fraction >= 1 {
		return nil, fmt.Errorf("split fraction %.2f must be in (0, 1)", fraction)
	}

	id, err := input.Tree.SplitTile(input.Target, input.Direction, input.Pane, fraction)
	if err != nil {
		return nil, err
	}
	parent, _ := input.Tree.ParentOf(id)

	log.Debug().
		Str("target", input.Target.String()).
		Str("direction", input.Direction.String()).
		Float64("fraction", fraction).
		Str("new_tile", id.String()).
		Msg("tile split")

	uc.notify(input.Tree, port.EditTileDropped)
	return &SplitOutput{NewTile: id, Parent: parent}, nil
}

// AddTab adds pane as the active tab next to target. A target that is
// not in a Tabs group is wrapped in one.
func (uc *ManageLayoutUseCase) AddTab(ctx context.Context, tree *entity.Tree, target entity.TileID, pane entity.Pane) (entity.TileID, error) {
	log := logging.FromContext(ctx)
	if tree == nil {
		return entity.NoTile, fmt.Errorf("tree is required")
	}

	sub := entity.NewTiles()
	id := sub.InsertPane(pane)

	if tree.IsEmpty() {
		tree.InsertSubtreeAt(entity.NewSubTree(id, sub), nil)
		return id, nil
	}
	if !tree.Tiles.Has(target) {
		return entity.NoTile, fmt.Errorf("add tab to %s: %w", target, entity.ErrTileNotFound)
	}

	group := target
	if c, ok := tree.Tiles.Container(target); !ok || c.Kind() != entity.KindTabs {
		if parent, ok := tree.ParentOf(target); ok {
			if pc, _ := tree.Tiles.Container(parent); pc.Kind() == entity.KindTabs {
				group = parent
			}
		}
	}

	ins := entity.NewInsertionPoint(group, entity.TabsAt(entity.Append))
	if !tree.InsertionAllowed(ins) || (uc.behavior != nil && !uc.behavior.AllowInsertion(tree, *ins)) {
		return entity.NoTile, fmt.Errorf("add tab to %s: %w", group, entity.ErrLayoutLocked)
	}
	tree.InsertSubtreeAt(entity.NewSubTree(id, sub), ins)
	tree.MakeActive(id)

	log.Debug().Str("group", group.String()).Str("tile", id.String()).Msg("tab added")
	return id, nil
}

// Close removes tile and its subtree, then simplifies the tree. It
// reports true when the tree became empty.
func (uc *ManageLayoutUseCase) Close(ctx context.Context, tree *entity.Tree, tile entity.TileID) (wasLast bool, err error) {
	log := logging.FromContext(ctx)
	if tree == nil {
		return false, fmt.Errorf("tree is required")
	}
	if !tree.Tiles.Has(tile) {
		log.Debug().Str("tile", tile.String()).Msg("close: tile not found")
		return false, nil
	}
	if uc.behavior != nil && !uc.behavior.IsTabClosable(tree, tile) {
		return false, fmt.Errorf("close %s: %w", tile, ErrTabNotClosable)
	}

	if _, ok := tree.ExtractSubtree(tile); !ok {
		return false, fmt.Errorf("close %s: %w", tile, entity.ErrLayoutLocked)
	}
	tree.Simplify(entity.DefaultSimplificationOptions())
	tree.EnsureActiveTabs()

	log.Debug().Str("tile", tile.String()).Int("remaining_panes", tree.PaneCount()).Msg("tile closed")
	uc.notify(tree, port.EditTileClosed)
	return tree.IsEmpty(), nil
}

// SelectTab activates tile inside its parent Tabs group.
func (uc *ManageLayoutUseCase) SelectTab(ctx context.Context, tree *entity.Tree, tile entity.TileID) error {
	if tree == nil {
		return fmt.Errorf("tree is required")
	}
	parent, ok := tree.ParentOf(tile)
	if !ok {
		return fmt.Errorf("select tab %s: %w", tile, entity.ErrNoParent)
	}
	if err := tree.SetActiveTab(parent, tile); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Str("tabs", parent.String()).Str("tile", tile.String()).Msg("tab selected")
	uc.notify(tree, port.EditTabSelected)
	return nil
}

// ResizeInput contains parameters for a keyboard-style resize.
type ResizeInput struct {
	Tree *entity.Tree
	Tile entity.TileID
	// Direction is the edge of Tile that moves outward.
	Direction entity.SplitDirection
	// Step is the fraction of the pair's combined share to move.
	Step float64
	// MinShare is the smallest fraction of the pair either side keeps.
	MinShare float64
}

// Resize grows tile toward Direction, taking space from the adjacent
// sibling of the nearest Linear ancestor on that axis. A negative Step
// shrinks it.
func (uc *ManageLayoutUseCase) Resize(ctx context.Context, input ResizeInput) error {
	log := logging.FromContext(ctx)
	tree := input.Tree
	if tree == nil {
		return fmt.Errorf("tree is required")
	}
	if !tree.Tiles.Has(input.Tile) {
		return fmt.Errorf("resize %s: %w", input.Tile, entity.ErrTileNotFound)
	}

	axis := input.Direction.Axis()
	forward := input.Direction == entity.SplitRight || input.Direction == entity.SplitDown

	child := input.Tile
	for {
		parent, ok := tree.ParentOf(child)
		if !ok {
			return ErrNothingToResize
		}
		c, _ := tree.Tiles.Container(parent)
		lin, isLinear := c.(*entity.Linear)
		if isLinear && lin.Dir == axis {
			idx := slices.Index(lin.Children(), child)
			n := idx - 1
			if forward {
				n = idx + 1
			}
			if n >= 0 && n < len(lin.Children()) {
				neighbour := lin.Children()[n]
				total := lin.Share(child) + lin.Share(neighbour)
				lo := clampFloat64(input.MinShare, 0, 0.5) * total
				grown := clampFloat64(lin.Share(child)+input.Step*total, lo, total-lo)

				if err := tree.SetShare(parent, child, grown); err != nil {
					return err
				}
				if err := tree.SetShare(parent, neighbour, total-grown); err != nil {
					return err
				}
				log.Debug().
					Str("linear", parent.String()).
					Str("child", child.String()).
					Float64("share", grown).
					Msg("tile resized")
				uc.notify(tree, port.EditTileResized)
				return nil
			}
		}
		child = parent
	}
}

// Equalize gives every visible child of linear the same share. NoTile
// equalizes every Linear container in the tree.
func (uc *ManageLayoutUseCase) Equalize(ctx context.Context, tree *entity.Tree, linear entity.TileID) error {
	if tree == nil {
		return fmt.Errorf("tree is required")
	}
	if linear != entity.NoTile {
		if err := tree.EqualizeShares(linear); err != nil {
			return err
		}
		uc.notify(tree, port.EditTileResized)
		return nil
	}

	n := 0
	for _, id := range tree.Tiles.IDs() {
		if c, ok := tree.Tiles.Container(id); ok {
			if _, ok := c.(*entity.Linear); ok {
				_ = tree.EqualizeShares(id)
				n++
			}
		}
	}
	logging.FromContext(ctx).Debug().Int("containers", n).Msg("shares equalized")
	if n > 0 {
		uc.notify(tree, port.EditTileResized)
	}
	return nil
}

func clampFloat64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
