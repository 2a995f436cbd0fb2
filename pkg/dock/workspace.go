package dock

import (
	"math"

	"github.com/matzehuels/viewdock/pkg/errors"
)

// DefaultBorder is the window border, in workspace units, that renderers
// leave around each view. It does not affect layout.
const DefaultBorder = 4.0

// Workspace is the root of a layout: a bounding rectangle and an optional
// split tree. The zero value is not usable; construct one with [New].
type Workspace struct {
	root *Split
	rect Rect

	// Border is the cosmetic gap renderers draw around views.
	Border float64
}

// New returns an empty workspace covering rect. It fails with an
// [errors.ErrCodeIllegalSize] error when a coordinate is NaN or infinite,
// the origin is negative or the extent is not positive; the first violation
// in x, y, width, height order is reported.
func New(rect Rect) (*Workspace, error) {
	switch {
	case !finite(rect.X):
		return nil, errors.New(errors.ErrCodeIllegalSize, "x must be finite, got %g", rect.X)
	case rect.X < 0:
		return nil, errors.New(errors.ErrCodeIllegalSize, "x must not be negative, got %g", rect.X)
	case !finite(rect.Y):
		return nil, errors.New(errors.ErrCodeIllegalSize, "y must be finite, got %g", rect.Y)
	case rect.Y < 0:
		return nil, errors.New(errors.ErrCodeIllegalSize, "y must not be negative, got %g", rect.Y)
	case !finite(rect.Width):
		return nil, errors.New(errors.ErrCodeIllegalSize, "width must be finite, got %g", rect.Width)
	case rect.Width <= 0:
		return nil, errors.New(errors.ErrCodeIllegalSize, "width must be positive, got %g", rect.Width)
	case !finite(rect.Height):
		return nil, errors.New(errors.ErrCodeIllegalSize, "height must be finite, got %g", rect.Height)
	case rect.Height <= 0:
		return nil, errors.New(errors.ErrCodeIllegalSize, "height must be positive, got %g", rect.Height)
	}
	return &Workspace{rect: rect, Border: DefaultBorder}, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Rect returns the workspace's bounding rectangle.
func (w *Workspace) Rect() Rect { return w.rect }

// Root returns the root split, or nil for an empty workspace.
func (w *Workspace) Root() *Split { return w.root }

// SplitTop inserts h at the top-left position of the tree. The first view
// of an empty workspace becomes a [Full] root that fills the whole area.
func (w *Workspace) SplitTop(h ViewHandle, dir Direction) {
	if w.root != nil {
		w.root.SplitLeft(h, dir)
		return
	}
	root := &Split{ratio: 1.0, direction: Full}
	root.left.setLeaf(h)
	w.root = root
}

// SplitByViewHandle inserts h next to the first view whose handle is find.
// It does nothing when the workspace is empty or find is not present.
func (w *Workspace) SplitByViewHandle(dir Direction, find, h ViewHandle) {
	w.TrySplitByViewHandle(dir, find, h)
}

// TrySplitByViewHandle is [Workspace.SplitByViewHandle] that also reports
// whether find was located.
func (w *Workspace) TrySplitByViewHandle(dir Direction, find, h ViewHandle) bool {
	if w.root == nil {
		return false
	}
	return w.root.FindAndSplitByHandle(dir, find, h)
}

// Update recomputes the rectangle of every view from the root down. It must
// be called after mutations and before geometry is read.
func (w *Workspace) Update() {
	if w.root != nil {
		w.root.recompute(w.rect)
	}
}

// Walk calls fn for every split, parent before children and left before
// right, with the root at depth 0. Renderers that draw each split's left
// views, then its right views, while walking reproduce the reference
// painting order.
func (w *Workspace) Walk(fn func(s *Split, depth int)) {
	if w.root != nil {
		w.root.walk(0, fn)
	}
}

// Views returns every view in painting order.
func (w *Workspace) Views() []View {
	var out []View
	w.Walk(func(s *Split, _ int) {
		out = append(out, s.left.views.Views...)
		out = append(out, s.right.views.Views...)
	})
	return out
}

// Handles returns the handles of [Workspace.Views].
func (w *Workspace) Handles() []ViewHandle {
	views := w.Views()
	out := make([]ViewHandle, len(views))
	for i, v := range views {
		out[i] = v.Handle
	}
	return out
}

// Len returns the number of views in the workspace.
func (w *Workspace) Len() int {
	n := 0
	w.Walk(func(s *Split, _ int) {
		n += s.left.views.Len() + s.right.views.Len()
	})
	return n
}

// Depth returns the number of split levels; zero for an empty workspace.
func (w *Workspace) Depth() int {
	if w.root == nil {
		return 0
	}
	return w.root.depth()
}

// Find returns the first view with handle h, searching in the same order as
// [Workspace.SplitByViewHandle].
func (w *Workspace) Find(h ViewHandle) (View, bool) {
	if w.root == nil {
		return View{}, false
	}
	return w.root.find(h)
}
