package script

import (
	"fmt"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/errors"
)

// Kind names an insertion operation.
type Kind string

const (
	// KindSplitTop inserts at the top-left of the tree (Workspace.SplitTop).
	KindSplitTop Kind = "split_top"
	// KindSplitByHandle inserts next to an existing view
	// (Workspace.SplitByViewHandle).
	KindSplitByHandle Kind = "split_by_handle"
)

// Op is one insertion. Target is only meaningful for KindSplitByHandle.
type Op struct {
	Kind      Kind            `json:"op" toml:"op" yaml:"op"`
	Direction dock.Direction  `json:"direction" toml:"direction" yaml:"direction"`
	Target    dock.ViewHandle `json:"target,omitempty" toml:"target,omitzero" yaml:"target,omitempty"`
	Handle    dock.ViewHandle `json:"handle" toml:"handle" yaml:"handle"`
}

// SplitTop returns a KindSplitTop op.
func SplitTop(h dock.ViewHandle, dir dock.Direction) Op {
	return Op{Kind: KindSplitTop, Direction: dir, Handle: h}
}

// SplitByHandle returns a KindSplitByHandle op inserting h next to target.
func SplitByHandle(dir dock.Direction, target, h dock.ViewHandle) Op {
	return Op{Kind: KindSplitByHandle, Direction: dir, Target: target, Handle: h}
}

func (o Op) String() string {
	if o.Kind == KindSplitByHandle {
		return fmt.Sprintf("%s %s %s -> %s", o.Kind, o.Direction, o.Target, o.Handle)
	}
	return fmt.Sprintf("%s %s %s", o.Kind, o.Direction, o.Handle)
}

// Validate checks that the op kind and direction are known.
func (o Op) Validate() error {
	switch o.Kind {
	case KindSplitTop, KindSplitByHandle:
	default:
		return errors.New(errors.ErrCodeInvalidScript, "unknown op %q", o.Kind)
	}
	if !o.Direction.Valid() {
		return errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %d", int(o.Direction))
	}
	return nil
}

// ApplyTo performs the op on ws. It reports false when a KindSplitByHandle
// target was not found, in which case ws is unchanged. Update is not called.
func (o Op) ApplyTo(ws *dock.Workspace) bool {
	switch o.Kind {
	case KindSplitTop:
		ws.SplitTop(o.Handle, o.Direction)
		return true
	case KindSplitByHandle:
		return ws.TrySplitByViewHandle(o.Direction, o.Target, o.Handle)
	}
	return false
}

// Script describes a workspace as bounds plus an ordered list of ops.
type Script struct {
	Name   string    `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Bounds dock.Rect `json:"bounds" toml:"bounds" yaml:"bounds"`
	Ops    []Op      `json:"ops" toml:"ops" yaml:"ops"`
}

// New returns an empty script over bounds.
func New(name string, bounds dock.Rect) *Script {
	return &Script{Name: name, Bounds: bounds}
}

// Validate checks the name, that the bounds are finite numbers and that every
// op is well formed. Whether the bounds can host a workspace is decided by
// dock.New, which reports errors.ErrCodeIllegalSize.
func (s *Script) Validate() error {
	if err := errors.ValidateName(s.Name); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"bounds.x", s.Bounds.X},
		{"bounds.y", s.Bounds.Y},
		{"bounds.width", s.Bounds.Width},
		{"bounds.height", s.Bounds.Height},
	} {
		if err := errors.ValidateFinite(f.name, f.v); err != nil {
			return err
		}
	}
	for i, op := range s.Ops {
		if err := op.Validate(); err != nil {
			return errors.New(errors.GetCode(err), "op %d: %s", i, errors.UserMessage(err))
		}
	}
	return nil
}

// Apply validates op and appends it to the script.
func (s *Script) Apply(op Op) error {
	if err := op.Validate(); err != nil {
		return err
	}
	s.Ops = append(s.Ops, op)
	return nil
}

// Clone returns a deep copy of the script.
func (s *Script) Clone() *Script {
	out := *s
	out.Ops = append([]Op(nil), s.Ops...)
	return &out
}

// Demo returns the reference four-view layout: a full-size background view
// with a vertical split on top whose right half is split horizontally.
func Demo() *Script {
	return &Script{
		Name:   "demo",
		Bounds: dock.NewRect(0, 0, 1024, 768),
		Ops: []Op{
			SplitTop(0xff, dock.Vertical),
			SplitTop(0xff00ff, dock.Vertical),
			SplitByHandle(dock.Vertical, 0xff00ff, 0x00ff00),
			SplitByHandle(dock.Horizontal, 0x00ff00, 0x5522),
		},
	}
}
