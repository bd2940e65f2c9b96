package entity

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyLayoutName is returned when a saved layout has a blank name.
var ErrEmptyLayoutName = errors.New("layout name cannot be empty")

// SavedLayout is a named layout snapshot kept by a LayoutRepository.
type SavedLayout struct {
	ID          string
	Name        string
	Snapshot    LayoutSnapshot
	ContentHash string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSavedLayout stamps a snapshot with a name. ID and hash are assigned
// by the repository on first save.
func NewSavedLayout(name string, snap LayoutSnapshot) *SavedLayout {
	now := time.Now()
	return &SavedLayout{
		Name:      strings.TrimSpace(name),
		Snapshot:  snap,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the name and snapshot version.
func (l *SavedLayout) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyLayoutName
	}
	return l.Snapshot.CheckVersion()
}

// PaneCount counts panes across all trees of the snapshot.
func (l *SavedLayout) PaneCount() int {
	n := l.Snapshot.Root.PaneCount()
	for _, d := range l.Snapshot.Detached {
		n += d.Tree.PaneCount()
	}
	for _, f := range l.Snapshot.Floating {
		n += f.Tree.PaneCount()
	}
	return n
}

// WindowCount is the number of detached and floating hosts.
func (l *SavedLayout) WindowCount() int {
	return len(l.Snapshot.Detached) + len(l.Snapshot.Floating)
}

// PaneCount counts pane nodes in the snapshot.
func (s TreeSnapshot) PaneCount() int {
	n := 0
	for _, node := range s.Nodes {
		if node.Kind == NodePane {
			n++
		}
	}
	return n
}
