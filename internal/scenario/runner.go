package scenario

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/bnema/dockyard/internal/ui/docking"
)

// ErrFinished is returned by Step once every frame has run.
var ErrFinished = errors.New("scenario finished")

// Failure is an expectation that did not hold.
type Failure struct {
	Frame   int
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("frame %d: %s", f.Frame, f.Message)
}

// Result summarises a finished run.
type Result struct {
	Name     string
	Frames   int
	Root     string
	Windows  []string
	Failures []Failure
	Events   []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Runner steps a scenario one frame at a time.
type Runner struct {
	scenario *Scenario
	manager  *docking.Manager
	behavior *Behavior
	commands *commandLog
	layout   *usecase.ManageLayoutUseCase
	logger   zerolog.Logger

	frames      []Frame
	next        int
	rootInner   entity.Rect
	dockRects   map[port.ViewportID]entity.Rect
	lastPointer map[port.ViewportID]entity.Pos
	last        docking.FrameOutput
	failures    []Failure
}

// NewRunner builds the initial workspace of s. The logger is taken from
// ctx.
func NewRunner(ctx context.Context, s *Scenario) (*Runner, error) {
	logger := logging.FromContext(logging.WithScenario(ctx, s.Name)).With().Logger()

	root, err := entity.NewTreeFromBlueprint("root", s.Layout, Registry{}.Pane)
	if err != nil {
		return nil, fmt.Errorf("%w: layout: %w", ErrInvalidScenario, err)
	}
	ws := entity.NewWorkspaceLayout(root)
	for i, d := range s.Detached {
		tree, err := entity.NewTreeFromBlueprint(fmt.Sprintf("detached-%d", i+1), d.Layout, Registry{}.Pane)
		if err != nil {
			return nil, fmt.Errorf("%w: detached %d: %w", ErrInvalidScenario, i+1, err)
		}
		var inner *entity.Rect
		if d.Inner != nil {
			r := d.Inner.Rect()
			inner = &r
		}
		ws = ws.WithDetached(d.Title, inner, tree)
	}

	behavior := NewBehavior(s.Chrome.Style(), logging.Component(logger, "behavior"))
	commands := &commandLog{logger: logging.Component(logger, "viewports")}
	m := docking.NewFromWorkspace(ws, behavior, commands, s.Options(), logging.Component(logger, "docking"))

	for i, f := range s.Floating {
		tree, err := entity.NewTreeFromBlueprint(fmt.Sprintf("floating-%d", i+1), f.Layout, Registry{}.Pane)
		if err != nil {
			return nil, fmt.Errorf("%w: floating %d: %w", ErrInvalidScenario, i+1, err)
		}
		vp := port.ViewportID(f.Viewport)
		id, err := m.AddFloating(vp, tree, f.Offset.Vec(), f.Size.Vec())
		if err != nil {
			return nil, fmt.Errorf("%w: floating %d: %w", ErrInvalidScenario, i+1, err)
		}
		if f.Collapsed {
			if err := m.SetFloatingCollapsed(docking.FloatingOf(vp, id), true); err != nil {
				return nil, fmt.Errorf("%w: floating %d: %w", ErrInvalidScenario, i+1, err)
			}
		}
	}

	var frames []Frame
	for _, f := range s.Frames {
		for range max(f.Repeat, 1) {
			frames = append(frames, f)
		}
	}

	logger.Debug().Int("frames", len(frames)).Int("panes", ws.PaneCount()).Msg("scenario loaded")
	return &Runner{
		scenario:    s,
		manager:     m,
		behavior:    behavior,
		commands:    commands,
		layout:      usecase.NewManageLayoutUseCase(behavior),
		logger:      logger,
		frames:      frames,
		rootInner:   s.rootRect(),
		dockRects:   make(map[port.ViewportID]entity.Rect),
		lastPointer: make(map[port.ViewportID]entity.Pos),
	}, nil
}

// Run replays s to the end.
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	r, err := NewRunner(ctx, s)
	if err != nil {
		return nil, err
	}
	for !r.Done() {
		if _, err := r.Step(ctx); err != nil {
			return nil, err
		}
	}
	if len(r.frames) == 0 {
		r.check(0, docking.FrameOutput{})
	}
	return r.Result(), nil
}

func (r *Runner) Scenario() *Scenario { return r.scenario }
func (r *Runner) Manager() *docking.Manager { return r.manager }
func (r *Runner) Behavior() *Behavior { return r.behavior }
func (r *Runner) Last() docking.FrameOutput { return r.last }
func (r *Runner) Failures() []Failure { return r.failures }
func (r *Runner) Done() bool { return r.next >= len(r.frames) }
func (r *Runner) Commands() []port.ViewportCommand { return r.commands.sent }

// Progress returns how many frames ran out of the total.
func (r *Runner) Progress() (int, int) { return r.next, len(r.frames) }

// Step runs the next frame and checks the expectations attached to it.
func (r *Runner) Step(ctx context.Context) (docking.FrameOutput, error) {
	if r.Done() {
		return r.last, ErrFinished
	}
	index := r.next + 1
	in, err := r.input(ctx, r.frames[r.next])
	if err != nil {
		return r.last, fmt.Errorf("frame %d: %w", index, err)
	}
	r.next++
	r.last = r.manager.RunFrame(ctx, in)
	r.logger.Debug().
		Int("frame", index).
		Int("commands", len(r.last.Commands)).
		Bool("payload", r.last.Payload != nil).
		Msg("frame done")
	r.check(index, r.last)
	return r.last, nil
}

// Result summarises the run so far.
func (r *Runner) Result() *Result {
	res := &Result{
		Name:     r.scenario.Name,
		Frames:   r.next,
		Root:     entity.TreeShape(r.manager.Root(), PaneName),
		Failures: slices.Clone(r.failures),
		Events:   r.manager.EventLog(),
	}
	for _, w := range r.manager.Detached() {
		res.Windows = append(res.Windows, entity.TreeShape(w.Tree, PaneName))
	}
	return res
}

func (r *Runner) input(ctx context.Context, f Frame) (docking.FrameInput, error) {
	in := docking.FrameInput{Viewports: make(map[port.ViewportID]docking.ViewportInput)}
	for _, b := range r.scenario.Monitors {
		in.Monitors = append(in.Monitors, b.Rect())
	}
	in.Viewports[port.RootViewport] = docking.ViewportInput{
		InnerRect: r.rootInner,
		DockRect:  r.dockRects[port.RootViewport],
	}
	for _, w := range r.manager.Detached() {
		in.Viewports[w.Viewport] = docking.ViewportInput{InnerRect: w.InnerRect, DockRect: r.dockRects[w.Viewport]}
	}

	for _, st := range f.Input {
		vp := port.ViewportID(st.Viewport)
		vin, ok := in.Viewports[vp]
		if !ok {
			return in, fmt.Errorf("%s: %w", vp, docking.ErrUnknownViewport)
		}
		if st.Inner != nil {
			vin.InnerRect = st.Inner.Rect()
			if vp == port.RootViewport {
				r.rootInner = vin.InnerRect
			}
		}
		if st.Dock != nil {
			r.dockRects[vp] = st.Dock.Rect()
			vin.DockRect = r.dockRects[vp]
		}
		vin.Pointer = r.pointer(vp, st)
		vin.Modifiers = docking.Modifiers{Shift: st.Shift, Ctrl: st.Ctrl, Alt: st.Alt}
		vin.Escape = st.Escape
		vin.CloseRequested = st.Close

		if err := r.edit(ctx, vp, st); err != nil {
			return in, err
		}

		surface := docking.FloatingOf(vp, docking.FloatingID(st.Floating))
		if st.Drag != "" {
			tile, err := r.findPane(surface, st.Drag)
			if err != nil {
				return in, err
			}
			vin.Drags = append(vin.Drags, docking.DragReport{Surface: surface, Tile: tile})
		}
		if st.TitleDrag {
			vin.TitleDrag = &docking.TitleDrag{Surface: surface}
		}
		in.Viewports[vp] = vin
	}
	return in, nil
}

func (r *Runner) pointer(vp port.ViewportID, st Step) docking.PointerInput {
	p := docking.PointerInput{Down: st.Down, Released: st.Released}
	if st.Global != nil {
		g := st.Global.Pos()
		p.Global = &g
	}
	if st.Pointer != nil {
		pos := st.Pointer.Pos()
		p.Pos = &pos
		if prev, ok := r.lastPointer[vp]; ok {
			p.Delta = pos.Sub(prev)
		}
		r.lastPointer[vp] = pos
	}
	if st.Delta != nil {
		p.Delta = st.Delta.Vec()
	}
	return p
}

func (r *Runner) edit(ctx context.Context, vp port.ViewportID, st Step) error {
	if st.Select == "" && st.CloseTab == "" {
		return nil
	}
	surface := docking.DockTreeOf(vp)
	tree, ok := r.manager.TreeFor(surface)
	if !ok {
		return fmt.Errorf("%s: %w", surface, docking.ErrUnknownSurface)
	}
	if st.Select != "" {
		tile, err := r.findPane(surface, st.Select)
		if err != nil {
			return err
		}
		if err := r.layout.SelectTab(ctx, tree, tile); err != nil {
			return fmt.Errorf("select %q: %w", st.Select, err)
		}
	}
	if st.CloseTab != "" {
		tile, err := r.findPane(surface, st.CloseTab)
		if err != nil {
			return err
		}
		if _, err := r.layout.Close(ctx, tree, tile); err != nil {
			return fmt.Errorf("close %q: %w", st.CloseTab, err)
		}
	}
	return nil
}

func (r *Runner) findPane(surface docking.DockSurface, name string) (entity.TileID, error) {
	tree, ok := r.manager.TreeFor(surface)
	if !ok {
		return entity.NoTile, fmt.Errorf("%s: %w", surface, docking.ErrUnknownSurface)
	}
	tile, ok := tree.FindPane(func(p entity.Pane) bool { return PaneName(p) == name })
	if !ok {
		return entity.NoTile, fmt.Errorf("%w: pane %q is not in %s", ErrInvalidScenario, name, surface)
	}
	return tile, nil
}

func (r *Runner) check(frame int, out docking.FrameOutput) {
	last := frame == len(r.frames)
	for _, e := range r.scenario.Expect {
		if e.Frame == frame || (e.Frame == 0 && last) {
			for _, msg := range r.evaluate(e, out) {
				r.logger.Warn().Int("frame", frame).Msg(msg)
				r.failures = append(r.failures, Failure{Frame: frame, Message: msg})
			}
		}
	}
}

func (r *Runner) evaluate(e Expectation, out docking.FrameOutput) []string {
	var msgs []string
	m := r.manager
	if e.Root != nil {
		if got := entity.TreeShape(m.Root(), PaneName); got != *e.Root {
			msgs = append(msgs, fmt.Sprintf("root is %s, want %s", got, *e.Root))
		}
	}
	if e.Windows != nil {
		got := make([]string, 0, len(m.Detached()))
		for _, w := range m.Detached() {
			got = append(got, entity.TreeShape(w.Tree, PaneName))
		}
		if !slices.Equal(got, e.Windows) {
			msgs = append(msgs, fmt.Sprintf("windows are %v, want %v", got, e.Windows))
		}
	}
	if e.Detached != nil {
		if got := len(m.Detached()); got != *e.Detached {
			msgs = append(msgs, fmt.Sprintf("%d detached windows, want %d", got, *e.Detached))
		}
	}
	if e.Floating != nil {
		got := len(m.Floating(port.RootViewport))
		for _, w := range m.Detached() {
			got += len(m.Floating(w.Viewport))
		}
		if got != *e.Floating {
			msgs = append(msgs, fmt.Sprintf("%d floating windows, want %d", got, *e.Floating))
		}
	}
	if e.Payload != nil && (out.Payload != nil) != *e.Payload {
		msgs = append(msgs, fmt.Sprintf("payload present is %t, want %t", out.Payload != nil, *e.Payload))
	}
	if e.Ghost != nil && (out.Ghost != nil) != *e.Ghost {
		msgs = append(msgs, fmt.Sprintf("ghost present is %t, want %t", out.Ghost != nil, *e.Ghost))
	}
	if e.Commands != nil {
		got := make([]string, 0, len(out.Commands))
		for _, c := range out.Commands {
			got = append(got, c.Kind.String())
		}
		if !slices.Equal(got, e.Commands) {
			msgs = append(msgs, fmt.Sprintf("commands are %v, want %v", got, e.Commands))
		}
	}
	if len(e.Events) > 0 {
		log := strings.Join(m.EventLog(), "\n")
		for _, want := range e.Events {
			if !strings.Contains(log, want) {
				msgs = append(msgs, fmt.Sprintf("event log lacks %q", want))
			}
		}
	}
	return msgs
}
