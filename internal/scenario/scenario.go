// Package scenario replays scripted drag sessions against a docking
// manager. Scenarios are TOML documents: an initial workspace, a list of
// frames of pointer input and a list of expectations.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/overlay"
	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/ui/docking"
)

// ErrInvalidScenario is returned for scenarios that cannot be replayed.
var ErrInvalidScenario = errors.New("invalid scenario")

// Point is an [x, y] pair.
type Point [2]float64

// Pos converts p to a position.
func (p Point) Pos() entity.Pos { return entity.Pos{X: p[0], Y: p[1]} }

// Vec converts p to a vector.
func (p Point) Vec() entity.Vec { return entity.Vec{X: p[0], Y: p[1]} }

// Box is an [x, y, width, height] rectangle.
type Box [4]float64

// Rect converts b to a rect.
func (b Box) Rect() entity.Rect {
	return entity.RectFromMinSize(entity.Pos{X: b[0], Y: b[1]}, entity.Vec{X: b[2], Y: b[3]})
}

// Scenario is one scripted session.
type Scenario struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	// Root is the inner rect of the root viewport. Defaults to 800x600
	// at the origin.
	Root     *Box  `toml:"root"`
	Monitors []Box `toml:"monitors"`

	Docking config.DockingConfig `toml:"docking"`
	Overlay overlay.Metrics      `toml:"overlay"`
	Chrome  config.LayoutConfig  `toml:"chrome"`

	Layout   entity.Blueprint `toml:"layout"`
	Detached []DetachedSpec   `toml:"detached"`
	Floating []FloatingSpec   `toml:"floating"`

	Frames []Frame        `toml:"frame"`
	Expect []Expectation `toml:"expect"`
}

// DetachedSpec is a native window open when the session starts. The
// n-th entry becomes viewport n.
type DetachedSpec struct {
	Title  string           `toml:"title"`
	Inner  *Box             `toml:"inner"`
	Layout entity.Blueprint `toml:"layout"`
}

// FloatingSpec is a floating window open when the session starts.
type FloatingSpec struct {
	Viewport  uint64           `toml:"viewport"`
	Offset    Point            `toml:"offset"`
	Size      Point            `toml:"size"`
	Collapsed bool             `toml:"collapsed"`
	Layout    entity.Blueprint `toml:"layout"`
}

// Frame is the input of one or more identical frames.
type Frame struct {
	// Repeat runs the frame this many times. Zero means once.
	Repeat int    `toml:"repeat"`
	Input  []Step `toml:"viewport"`
}

// Step is what one viewport observed during a frame. Viewports a frame
// does not list still run, with no input.
type Step struct {
	Viewport uint64 `toml:"viewport"`
	Inner    *Box   `toml:"inner"`
	Dock     *Box   `toml:"dock"`
	Pointer  *Point `toml:"pointer"`
	Global   *Point `toml:"global"`
	// Delta defaults to the motion since the previous local pointer of
	// the same viewport.
	Delta    *Point `toml:"delta"`
	Down     bool   `toml:"down"`
	Released bool   `toml:"released"`
	Shift    bool   `toml:"shift"`
	Ctrl     bool   `toml:"ctrl"`
	Alt      bool   `toml:"alt"`
	Escape   bool   `toml:"escape"`
	Close    bool   `toml:"close"`

	// Drag names a pane being dragged in the surface picked by Floating.
	Drag string `toml:"drag"`
	// Floating is the id of a floating window of the viewport. Ids count
	// from 1 in creation order across the session. Zero is the dock tree.
	Floating  int  `toml:"floating"`
	TitleDrag bool `toml:"title_drag"`

	// Select and CloseTab edit the dock tree before the frame runs.
	Select   string `toml:"select"`
	CloseTab string `toml:"close_tab"`
}

// Expectation is checked after a frame.
type Expectation struct {
	// Frame is the 1-based frame index. Zero means after the last frame.
	Frame    int      `toml:"frame"`
	Root     *string  `toml:"root"`
	Windows  []string `toml:"windows"`
	Detached *int     `toml:"detached"`
	Floating *int     `toml:"floating"`
	Payload  *bool    `toml:"payload"`
	Ghost    *bool    `toml:"ghost"`
	// Commands lists the viewport command kinds of that frame, in order.
	Commands []string `toml:"commands"`
	// Events are substrings that must appear in the event log.
	Events []string `toml:"events"`
}

// Parse decodes a scenario. Docking and overlay settings absent from
// data keep the values of base.
func Parse(data []byte, base *config.Config) (*Scenario, error) {
	if base == nil {
		base = config.DefaultConfig()
	}
	s := &Scenario{Docking: base.Docking, Overlay: base.Overlay, Chrome: base.Layout}
	if err := toml.Unmarshal(data, s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", ErrInvalidScenario, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and parses a scenario file. An unnamed scenario is named
// after its path.
func Load(path string, base *config.Config) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks references between sections.
func (s *Scenario) Validate() error {
	windows := uint64(len(s.Detached))
	for i, f := range s.Floating {
		if f.Viewport > windows {
			return fmt.Errorf("%w: floating %d: viewport %d does not exist", ErrInvalidScenario, i+1, f.Viewport)
		}
		if f.Size[0] <= 0 || f.Size[1] <= 0 {
			return fmt.Errorf("%w: floating %d: size must be positive", ErrInvalidScenario, i+1)
		}
	}
	total := s.FrameCount()
	for i, e := range s.Expect {
		if e.Frame < 0 || e.Frame > total {
			return fmt.Errorf("%w: expect %d: frame %d out of range 0..%d", ErrInvalidScenario, i+1, e.Frame, total)
		}
	}
	for i, f := range s.Frames {
		if f.Repeat < 0 {
			return fmt.Errorf("%w: frame %d: negative repeat", ErrInvalidScenario, i+1)
		}
		for _, st := range f.Input {
			if st.Floating < 0 {
				return fmt.Errorf("%w: frame %d: negative floating index", ErrInvalidScenario, i+1)
			}
		}
	}
	return nil
}

// FrameCount is the number of frames the scenario runs, repeats
// included.
func (s *Scenario) FrameCount() int {
	n := 0
	for _, f := range s.Frames {
		n += max(f.Repeat, 1)
	}
	return n
}

// Options is the docking profile of the scenario.
func (s *Scenario) Options() docking.Options {
	return docking.OptionsFromConfig(&config.Config{Docking: s.Docking, Overlay: s.Overlay})
}

func (s *Scenario) rootRect() entity.Rect {
	if s.Root == nil {
		return entity.Rect{Max: entity.Pos{X: 800, Y: 600}}
	}
	return s.Root.Rect()
}
