package entity

// WorkspaceLayout is the preset a docking session starts from: the root
// dock tree plus any number of detached windows.
type WorkspaceLayout struct {
	Root     *Tree
	Detached []DetachedLayout
}

// DetachedLayout describes one detached native window. A nil InnerRect
// lets the host pick the position and the default size applies.
type DetachedLayout struct {
	Title     string
	InnerRect *Rect
	Tree      *Tree
}

// NewWorkspaceLayout wraps a root tree with no detached windows.
func NewWorkspaceLayout(root *Tree) *WorkspaceLayout {
	if root == nil {
		root = EmptyTree("root")
	}
	return &WorkspaceLayout{Root: root}
}

// WithDetached appends a detached window and returns w for chaining.
func (w *WorkspaceLayout) WithDetached(title string, inner *Rect, tree *Tree) *WorkspaceLayout {
	w.Detached = append(w.Detached, DetachedLayout{Title: title, InnerRect: inner, Tree: tree})
	return w
}

// PaneCount counts panes across every tree of the workspace.
func (w *WorkspaceLayout) PaneCount() int {
	n := 0
	if w.Root != nil {
		n += w.Root.PaneCount()
	}
	for _, d := range w.Detached {
		if d.Tree != nil {
			n += d.Tree.PaneCount()
		}
	}
	return n
}
