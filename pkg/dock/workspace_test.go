package dock

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/viewdock/pkg/errors"
)

func newTestWorkspace(t *testing.T, w, h float64) *Workspace {
	t.Helper()
	ws, err := New(NewRect(0, 0, w, h))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ws
}

// describe renders the tree structure (kinds, handles, ratios, directions)
// without geometry, so structural equality can be compared as strings.
func describe(s *Split) string {
	if s == nil {
		return "nil"
	}
	side := func(side Side) string {
		switch s.Kind(side) {
		case SlotLeaf:
			return fmt.Sprint(s.Container(side).Handles())
		case SlotNode:
			return describe(s.Child(side))
		default:
			return "_"
		}
	}
	return fmt.Sprintf("%s(%g){%s|%s}", s.Direction(), s.Ratio(), side(Left), side(Right))
}

func TestNewRejectsIllegalSize(t *testing.T) {
	tests := []struct {
		name    string
		rect    Rect
		wantMsg string
	}{
		{"negative x", NewRect(-0.1, 0, 1, 1), "x must not be negative"},
		{"negative y", NewRect(0, -0.1, 1, 1), "y must not be negative"},
		{"zero width", NewRect(0, 0, 0, 1), "width must be positive"},
		{"zero height", NewRect(0, 0, 1, 0), "height must be positive"},
		{"negative width", NewRect(0, 0, -1, 1), "width must be positive"},
		{"negative height", NewRect(0, 0, 1, -1), "height must be positive"},
		{"x reported before width", NewRect(-1, 0, 0, 1), "x must not be negative"},
		{"NaN x", NewRect(math.NaN(), 0, 1, 1), "x must be finite"},
		{"infinite y", NewRect(0, math.Inf(-1), 1, 1), "y must be finite"},
		{"NaN width", NewRect(0, 0, math.NaN(), 10), "width must be finite"},
		{"infinite width", NewRect(0, 0, math.Inf(1), 10), "width must be finite"},
		{"infinite height", NewRect(0, 0, 10, math.Inf(1)), "height must be finite"},
		{"width reported before NaN height", NewRect(0, 0, 0, math.NaN()), "width must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := New(tt.rect)
			if err == nil {
				t.Fatalf("New(%v) succeeded, want error", tt.rect)
			}
			if ws != nil {
				t.Errorf("New(%v) returned a workspace alongside the error", tt.rect)
			}
			if !errors.Is(err, errors.ErrCodeIllegalSize) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeIllegalSize)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNewValid(t *testing.T) {
	ws, err := New(NewRect(0, 0, 1024, 1024))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if ws.Root() != nil {
		t.Error("new workspace should have no root")
	}
	if ws.Border != DefaultBorder {
		t.Errorf("Border = %v, want %v", ws.Border, DefaultBorder)
	}
	if ws.Rect() != NewRect(0, 0, 1024, 1024) {
		t.Errorf("Rect() = %v", ws.Rect())
	}
}

func TestEmptyWorkspace(t *testing.T) {
	ws := newTestWorkspace(t, 100, 100)

	ws.SplitByViewHandle(Vertical, 1, 2)
	ws.Update()

	if ws.Root() != nil {
		t.Error("SplitByViewHandle on an empty workspace should not create a root")
	}
	if ws.TrySplitByViewHandle(Vertical, 1, 2) {
		t.Error("TrySplitByViewHandle on an empty workspace reported success")
	}
	if ws.Len() != 0 || ws.Depth() != 0 || len(ws.Views()) != 0 {
		t.Errorf("empty workspace: Len=%d Depth=%d Views=%d", ws.Len(), ws.Depth(), len(ws.Views()))
	}
	if _, ok := ws.Find(1); ok {
		t.Error("Find on an empty workspace reported a view")
	}
}

func TestSplitTopFirstView(t *testing.T) {
	ws := newTestWorkspace(t, 1024, 768)
	ws.SplitTop(0xff, Vertical)

	root := ws.Root()
	if root == nil {
		t.Fatal("root should exist after SplitTop")
	}
	if got := root.Views(Left); len(got) != 1 || got[0].Handle != 0xff {
		t.Errorf("left views = %v, want exactly [0xff]", got)
	}
	if root.Kind(Right) != SlotEmpty {
		t.Errorf("right slot = %v, want empty", root.Kind(Right))
	}
	if root.Direction() != Full {
		t.Errorf("root direction = %v, want full", root.Direction())
	}
	if root.Ratio() != 1.0 {
		t.Errorf("root ratio = %v, want 1", root.Ratio())
	}

	ws.Update()
	v, ok := ws.Find(0xff)
	if !ok {
		t.Fatal("Find(0xff) failed")
	}
	if v.Rect != ws.Rect() {
		t.Errorf("single view rect = %v, want whole workspace %v", v.Rect, ws.Rect())
	}
}

func TestSplitTopSecondView(t *testing.T) {
	ws := newTestWorkspace(t, 1024, 768)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(2, Vertical)

	root := ws.Root()
	if n := len(root.Views(Left)); n != 1 {
		t.Errorf("left views len = %d, want 1", n)
	}
	if n := len(root.Views(Right)); n != 1 {
		t.Errorf("right views len = %d, want 1", n)
	}
	if math.Abs(root.Ratio()-0.5) > 0.01 {
		t.Errorf("ratio = %v, want 0.5", root.Ratio())
	}
	if got := root.Views(Right)[0].Handle; got != 2 {
		t.Errorf("right handle = %v, want 2", got)
	}
}

func TestSplitLeftDeepens(t *testing.T) {
	ws := newTestWorkspace(t, 1000, 500)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(2, Vertical)

	root := ws.Root()
	oldLeft := root.Container(Left).Handles()

	root.SplitLeft(3, Horizontal)

	if root.Kind(Left) != SlotNode {
		t.Fatalf("left slot = %v, want node", root.Kind(Left))
	}
	if n := len(root.Views(Left)); n != 0 {
		t.Errorf("parent left views len = %d, want 0", n)
	}
	child := root.Child(Left)
	if got := child.Container(Right).Handles(); !slices.Equal(got, oldLeft) {
		t.Errorf("child right handles = %v, want previous left %v", got, oldLeft)
	}
	if got := child.Container(Left).Handles(); !slices.Equal(got, []ViewHandle{3}) {
		t.Errorf("child left handles = %v, want [3]", got)
	}
	if child.Direction() != Horizontal || child.Ratio() != 0.5 {
		t.Errorf("child = %v/%v, want horizontal/0.5", child.Direction(), child.Ratio())
	}
	if got := root.Container(Right).Handles(); !slices.Equal(got, []ViewHandle{2}) {
		t.Errorf("root right handles = %v, want [2]", got)
	}
}

func TestSplitRightDeepens(t *testing.T) {
	ws := newTestWorkspace(t, 1000, 500)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(2, Vertical)

	root := ws.Root()
	root.SplitRight(3, Vertical)

	child := root.Child(Right)
	if child == nil {
		t.Fatal("right child should exist")
	}
	if got := child.Container(Left).Handles(); !slices.Equal(got, []ViewHandle{2}) {
		t.Errorf("child left handles = %v, want [2]", got)
	}
	if got := child.Container(Right).Handles(); !slices.Equal(got, []ViewHandle{3}) {
		t.Errorf("child right handles = %v, want [3]", got)
	}
	if root.Kind(Right) != SlotNode || len(root.Views(Right)) != 0 {
		t.Error("root right side should delegate to the child")
	}
}

func TestSplitLeftPushesSubtreeToFarSide(t *testing.T) {
	ws := newTestWorkspace(t, 1000, 500)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(2, Vertical)
	ws.SplitTop(3, Vertical)
	first := ws.Root().Child(Left)

	ws.SplitTop(4, Horizontal)

	root := ws.Root()
	second := root.Child(Left)
	if second == nil || second == first {
		t.Fatal("SplitTop should add a new level above the previous left child")
	}
	if second.Child(Right) != first {
		t.Error("previous left subtree should move to the new child's right side")
	}
	if got := second.Container(Left).Handles(); !slices.Equal(got, []ViewHandle{4}) {
		t.Errorf("new child left handles = %v, want [4]", got)
	}
	if ws.Len() != 4 {
		t.Errorf("Len() = %d, want 4", ws.Len())
	}
	if ws.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", ws.Depth())
	}
}

func TestSplitByViewHandleUnknownIsNoop(t *testing.T) {
	ws := newTestWorkspace(t, 1024, 768)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(2, Vertical)
	ws.SplitByViewHandle(Horizontal, 2, 3)

	before := describe(ws.Root())
	beforeHandles := ws.Handles()

	ws.SplitByViewHandle(Vertical, 99, 4)

	if after := describe(ws.Root()); after != before {
		t.Errorf("tree changed:\nbefore %s\nafter  %s", before, after)
	}
	if got := ws.Handles(); !slices.Equal(got, beforeHandles) {
		t.Errorf("handles = %v, want %v", got, beforeHandles)
	}
	if ws.TrySplitByViewHandle(Vertical, 99, 4) {
		t.Error("TrySplitByViewHandle reported success for an unknown handle")
	}
}

func TestSplitByViewHandleFillsEmptySideFirst(t *testing.T) {
	ws := newTestWorkspace(t, 100, 100)
	ws.SplitTop(1, Vertical)
	ws.SplitByViewHandle(Vertical, 1, 2)

	root := ws.Root()
	if got := root.Container(Right).Handles(); !slices.Equal(got, []ViewHandle{2}) {
		t.Errorf("right handles = %v, want [2]", got)
	}
	if root.Child(Left) != nil || root.Child(Right) != nil {
		t.Error("no child split should be created while a side is empty")
	}
}

// With repeated handles the first match in the fixed search order (own left,
// own right, left subtree, right subtree) is split. This pins current
// behaviour; it is not a documented guarantee.
func TestSplitByViewHandleFirstMatchInSearchOrder(t *testing.T) {
	ws := newTestWorkspace(t, 100, 100)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(7, Vertical)
	ws.SplitTop(7, Horizontal)

	root := ws.Root()
	leftBefore := describe(root.Child(Left))

	ws.SplitByViewHandle(Vertical, 7, 9)

	if root.Kind(Right) != SlotNode {
		t.Fatalf("own right leaf should be split first, right slot = %v", root.Kind(Right))
	}
	if got := root.Child(Right).Container(Right).Handles(); !slices.Equal(got, []ViewHandle{9}) {
		t.Errorf("new view landed in %v, want [9] on the right child", got)
	}
	if got := describe(root.Child(Left)); got != leftBefore {
		t.Errorf("left subtree changed: %s -> %s", leftBefore, got)
	}
}

func TestUpdateGeometry(t *testing.T) {
	ws := newTestWorkspace(t, 1000, 500)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(2, Vertical)
	ws.SplitTop(3, Vertical)
	ws.Update()

	want := map[ViewHandle]Rect{
		3: NewRect(0, 0, 500, 500),
		1: NewRect(500, 0, 500, 500),
		2: NewRect(0, 0, 1000, 500),
	}
	for h, r := range want {
		v, ok := ws.Find(h)
		if !ok {
			t.Fatalf("Find(%v) failed", h)
		}
		if v.Rect != r {
			t.Errorf("view %v rect = %v, want %v", h, v.Rect, r)
		}
	}
}

func TestUpdateReferenceLayout(t *testing.T) {
	ws := newTestWorkspace(t, 1024, 768)
	ws.SplitTop(0xff, Vertical)
	ws.SplitTop(0xff00ff, Vertical)
	ws.SplitByViewHandle(Vertical, 0xff00ff, 0x00ff00)
	ws.SplitByViewHandle(Horizontal, 0x00ff00, 0x5522)
	ws.Update()

	want := []View{
		{Handle: 0xff, Rect: NewRect(0, 0, 1024, 768)},
		{Handle: 0xff00ff, Rect: NewRect(0, 0, 512, 768)},
		{Handle: 0x00ff00, Rect: NewRect(512, 0, 512, 384)},
		{Handle: 0x5522, Rect: NewRect(512, 384, 512, 384)},
	}
	if got := ws.Views(); !slices.Equal(got, want) {
		t.Errorf("Views() =\n%v\nwant\n%v", got, want)
	}
	if ws.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", ws.Depth())
	}
}

func TestUpdateIsDeterministic(t *testing.T) {
	ws := newTestWorkspace(t, 1280, 720)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(2, Horizontal)
	ws.SplitByViewHandle(Horizontal, 2, 3)
	ws.SplitByViewHandle(Vertical, 1, 4)
	ws.SplitTop(5, Horizontal)

	ws.Update()
	first := ws.Views()
	ws.Update()
	second := ws.Views()

	if !slices.Equal(first, second) {
		t.Errorf("Update() not deterministic:\n%v\n%v", first, second)
	}
}

func TestUpdateRequiredForGeometry(t *testing.T) {
	ws := newTestWorkspace(t, 100, 100)
	ws.SplitTop(1, Vertical)
	ws.Update()
	ws.SplitTop(2, Vertical)
	ws.SplitTop(3, Vertical)

	v, _ := ws.Find(1)
	if v.Rect != NewRect(0, 0, 100, 100) {
		t.Errorf("geometry changed without Update: %v", v.Rect)
	}

	ws.Update()
	v, _ = ws.Find(1)
	if v.Rect != NewRect(50, 0, 50, 100) {
		t.Errorf("after Update rect = %v, want (50,0 50x100)", v.Rect)
	}
}

func TestWalkOrder(t *testing.T) {
	ws := newTestWorkspace(t, 100, 100)
	ws.SplitTop(1, Vertical)
	ws.SplitTop(2, Vertical)
	ws.SplitByViewHandle(Horizontal, 2, 3)
	ws.SplitTop(4, Vertical)

	var depths []int
	ws.Walk(func(_ *Split, depth int) {
		depths = append(depths, depth)
	})
	if !slices.Equal(depths, []int{0, 1, 1}) {
		t.Errorf("walk depths = %v, want [0 1 1]", depths)
	}
	if got := ws.Handles(); !slices.Equal(got, []ViewHandle{4, 1, 2, 3}) {
		t.Errorf("Handles() = %v, want [4 1 2 3]", got)
	}
}

func TestViewsAreCopies(t *testing.T) {
	ws := newTestWorkspace(t, 100, 100)
	ws.SplitTop(1, Vertical)
	ws.Update()

	views := ws.Root().Views(Left)
	views[0].Handle = 42

	if _, ok := ws.Find(1); !ok {
		t.Error("mutating a returned slice changed the tree")
	}
}
