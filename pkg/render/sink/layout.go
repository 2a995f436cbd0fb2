package sink

import (
	"github.com/matzehuels/viewdock/pkg/dock"
)

// Layout is a renderer-ready snapshot of a workspace.
type Layout struct {
	Frame  dock.Rect
	Border float64
	Blocks []Block
	Tree   *TreeNode
}

// Block is one view to paint.
type Block struct {
	Handle dock.ViewHandle `json:"handle"`
	Index  int             `json:"index"` // position within its container
	Rect   dock.Rect       `json:"rect"`
	Depth  int             `json:"depth"`
	Side   string          `json:"side"`
}

// TreeNode mirrors one split.
type TreeNode struct {
	Direction dock.Direction `json:"direction"`
	Ratio     float64        `json:"ratio"`
	Left      TreeSlot       `json:"left"`
	Right     TreeSlot       `json:"right"`
}

// TreeSlot mirrors one side of a split: empty, a list of view handles, or a
// nested split.
type TreeSlot struct {
	Kind  string            `json:"kind"`
	Views []dock.ViewHandle `json:"views,omitempty"`
	Split *TreeNode         `json:"split,omitempty"`
}

// FromWorkspace captures ws. Call ws.Update first; view rectangles are taken
// as they are.
func FromWorkspace(ws *dock.Workspace) Layout {
	l := Layout{Frame: ws.Rect(), Border: ws.Border}
	ws.Walk(func(s *dock.Split, depth int) {
		for _, side := range []dock.Side{dock.Left, dock.Right} {
			for i, v := range s.Container(side).Views {
				l.Blocks = append(l.Blocks, Block{
					Handle: v.Handle,
					Index:  i,
					Rect:   v.Rect,
					Depth:  depth,
					Side:   side.String(),
				})
			}
		}
	})
	if root := ws.Root(); root != nil {
		l.Tree = treeOf(root)
	}
	return l
}

func treeOf(s *dock.Split) *TreeNode {
	return &TreeNode{
		Direction: s.Direction(),
		Ratio:     s.Ratio(),
		Left:      slotOf(s, dock.Left),
		Right:     slotOf(s, dock.Right),
	}
}

func slotOf(s *dock.Split, side dock.Side) TreeSlot {
	kind := s.Kind(side)
	out := TreeSlot{Kind: kind.String()}
	switch kind {
	case dock.SlotLeaf:
		out.Views = s.Container(side).Handles()
	case dock.SlotNode:
		out.Split = treeOf(s.Child(side))
	}
	return out
}

// Handles returns the block handles in painting order.
func (l Layout) Handles() []dock.ViewHandle {
	out := make([]dock.ViewHandle, len(l.Blocks))
	for i, b := range l.Blocks {
		out[i] = b.Handle
	}
	return out
}

// Visible returns the blocks whose centre is not painted over by a later
// block.
func (l Layout) Visible() []Block {
	var out []Block
	for i, b := range l.Blocks {
		cx, cy := b.Rect.X+b.Rect.Width/2, b.Rect.Y+b.Rect.Height/2
		covered := false
		for _, later := range l.Blocks[i+1:] {
			if containsPoint(later.Rect, cx, cy) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, b)
		}
	}
	return out
}

func containsPoint(r dock.Rect, x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
