package scenario

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// Behavior is the pane behaviour of scripted sessions: every pane is
// kept and closable, and edits are counted.
type Behavior struct {
	style  entity.LayoutStyle
	logger zerolog.Logger
	edits  map[port.EditAction]int
}

var _ port.PaneBehavior = (*Behavior)(nil)

// NewBehavior returns a Behavior drawing chrome with style.
func NewBehavior(style entity.LayoutStyle, logger zerolog.Logger) *Behavior {
	return &Behavior{style: style, logger: logger, edits: make(map[port.EditAction]int)}
}

func (b *Behavior) TabTitle(p entity.Pane) string { return fmt.Sprint(p) }

func (b *Behavior) Style(string) entity.LayoutStyle { return b.style }

func (b *Behavior) AllowInsertion(*entity.Tree, entity.InsertionPoint) bool { return true }

func (b *Behavior) IsTabClosable(*entity.Tree, entity.TileID) bool { return true }

func (b *Behavior) RetainPane(entity.Pane) bool { return true }

func (b *Behavior) OnEdit(tree *entity.Tree, action port.EditAction) {
	b.edits[action]++
	b.logger.Debug().Str("tree", tree.ID).Stringer("action", action).Msg("edit")
}

// Edits returns how many times action was reported.
func (b *Behavior) Edits(action port.EditAction) int { return b.edits[action] }

// Registry maps scenario panes to their names.
type Registry struct{}

var _ port.PaneRegistry = Registry{}

func (Registry) PaneID(p entity.Pane) string { return fmt.Sprint(p) }

func (Registry) Pane(id string) (entity.Pane, bool) { return id, id != "" }

// PaneName renders a pane for shapes and summaries.
func PaneName(p entity.Pane) string { return fmt.Sprint(p) }

// commandLog stands in for the windowing system.
type commandLog struct {
	logger zerolog.Logger
	sent   []port.ViewportCommand
}

var _ port.ViewportCommander = (*commandLog)(nil)

func (c *commandLog) Send(_ context.Context, cmd port.ViewportCommand) error {
	c.sent = append(c.sent, cmd)
	c.logger.Debug().Stringer("command", cmd).Msg("viewport command")
	return nil
}
