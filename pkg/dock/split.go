package dock

import "slices"

// Side names one half of a split: Left is the near side (left or top),
// Right is the far side (right or bottom).
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// SlotKind is the state of one side of a split.
type SlotKind int

const (
	// SlotEmpty holds nothing.
	SlotEmpty SlotKind = iota
	// SlotLeaf holds a non-empty container of views.
	SlotLeaf
	// SlotNode delegates its area to a child split.
	SlotNode
)

func (k SlotKind) String() string {
	switch k {
	case SlotLeaf:
		return "leaf"
	case SlotNode:
		return "node"
	default:
		return "empty"
	}
}

// slot is one side of a split. It is written only through setLeaf, setNode
// and take, so views and child are never both set.
type slot struct {
	views Container
	child *Split
}

func (s *slot) kind() SlotKind {
	switch {
	case s.child != nil:
		return SlotNode
	case len(s.views.Views) > 0:
		return SlotLeaf
	default:
		return SlotEmpty
	}
}

func (s *slot) setLeaf(h ViewHandle) {
	s.child = nil
	s.views = Container{}
	s.views.push(h)
}

func (s *slot) setNode(child *Split) {
	s.views = Container{}
	s.child = child
}

// take empties the slot and returns its previous content.
func (s *slot) take() slot {
	old := *s
	*s = slot{}
	return old
}

func (s *slot) assign(r Rect) {
	if s.child != nil {
		s.child.recompute(r)
		return
	}
	for i := range s.views.Views {
		s.views.Views[i].Rect = r
	}
}

// Split is a node of the layout tree. It divides its rectangle between a
// left and a right slot according to its direction and ratio.
//
// The ratio is the near side's share: the left width fraction for
// [Vertical], the top height fraction for [Horizontal]. A [Full] split gives
// both sides the whole rectangle.
type Split struct {
	left, right slot
	ratio       float64
	direction   Direction
}

func (s *Split) slot(side Side) *slot {
	if side == Left {
		return &s.left
	}
	return &s.right
}

// Direction returns how the split divides its rectangle.
func (s *Split) Direction() Direction { return s.direction }

// Ratio returns the near side's share of the split rectangle.
func (s *Split) Ratio() float64 { return s.ratio }

// Kind returns the state of the given side.
func (s *Split) Kind(side Side) SlotKind { return s.slot(side).kind() }

// Views returns a copy of the views held by side. It is empty unless the
// side is a leaf.
func (s *Split) Views(side Side) []View {
	return slices.Clone(s.slot(side).views.Views)
}

// Container returns a copy of the container held by side.
func (s *Split) Container(side Side) Container {
	return Container{Views: s.Views(side)}
}

// Child returns the child split of side, or nil unless the side is a node.
func (s *Split) Child(side Side) *Split { return s.slot(side).child }

// tryFillLeaf places h in the first empty side, left before right.
func (s *Split) tryFillLeaf(h ViewHandle) bool {
	for _, side := range [...]Side{Left, Right} {
		if sl := s.slot(side); sl.kind() == SlotEmpty {
			sl.setLeaf(h)
			s.ratio = 0.5
			return true
		}
	}
	return false
}

// SplitLeft inserts h on the near side. If either side is still empty the
// view simply fills it. Otherwise the left side grows one level deeper: a new
// child split with direction dir takes h on its left, the previous left
// content moves to the child's right, and the child becomes this node's left.
// A side holding a child split counts as occupied.
func (s *Split) SplitLeft(h ViewHandle, dir Direction) {
	s.insert(Left, h, dir)
}

// SplitRight is the mirror image of [Split.SplitLeft]: h lands on the new
// child's right and the previous right content moves to the child's left.
// A side holding a child split counts as occupied.
func (s *Split) SplitRight(h ViewHandle, dir Direction) {
	s.insert(Right, h, dir)
}

func (s *Split) insert(side Side, h ViewHandle, dir Direction) {
	if s.tryFillLeaf(h) {
		return
	}
	near := s.slot(side)
	child := &Split{ratio: 0.5, direction: dir}
	*child.slot(side.Opposite()) = near.take()
	child.slot(side).setLeaf(h)
	near.setNode(child)
}

// FindAndSplitByHandle searches depth-first for a view with handle find and
// inserts h next to it, on the side where it was found, using
// [Split.SplitLeft] or [Split.SplitRight] of the node that holds it.
//
// The search order is own left leaf, own right leaf, left subtree, right
// subtree. When handles repeat, the first match in that order is split.
// It returns false, leaving the tree untouched, when find is absent.
func (s *Split) FindAndSplitByHandle(dir Direction, find, h ViewHandle) bool {
	if s.left.views.Contains(find) {
		s.SplitLeft(h, dir)
		return true
	}
	if s.right.views.Contains(find) {
		s.SplitRight(h, dir)
		return true
	}
	if c := s.left.child; c != nil && c.FindAndSplitByHandle(dir, find, h) {
		return true
	}
	if c := s.right.child; c != nil {
		return c.FindAndSplitByHandle(dir, find, h)
	}
	return false
}

// find returns the first view with handle h in FindAndSplitByHandle order.
func (s *Split) find(h ViewHandle) (View, bool) {
	for _, sl := range [...]*slot{&s.left, &s.right} {
		for _, v := range sl.views.Views {
			if v.Handle == h {
				return v, true
			}
		}
	}
	for _, sl := range [...]*slot{&s.left, &s.right} {
		if sl.child != nil {
			if v, ok := sl.child.find(h); ok {
				return v, true
			}
		}
	}
	return View{}, false
}

// Layout divides r between the two sides according to the split's direction
// and ratio.
func (s *Split) Layout(r Rect) (a, b Rect) {
	switch s.direction {
	case Vertical:
		return r.SubdivideVertical(s.ratio)
	case Horizontal:
		return r.SubdivideHorizontal(s.ratio)
	default:
		return r, r
	}
}

func (s *Split) recompute(r Rect) {
	a, b := s.Layout(r)
	s.left.assign(a)
	s.right.assign(b)
}

// walk visits s and its descendants pre-order, left before right.
func (s *Split) walk(depth int, fn func(*Split, int)) {
	fn(s, depth)
	if c := s.left.child; c != nil {
		c.walk(depth+1, fn)
	}
	if c := s.right.child; c != nil {
		c.walk(depth+1, fn)
	}
}

func (s *Split) depth() int {
	d := 0
	for _, c := range [...]*Split{s.left.child, s.right.child} {
		if c != nil {
			d = max(d, c.depth())
		}
	}
	return d + 1
}
