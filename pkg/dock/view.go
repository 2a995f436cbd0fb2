package dock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/viewdock/pkg/errors"
)

// ViewHandle identifies a view. Its meaning belongs to the caller; two views
// with equal handles are indistinguishable to this package.
type ViewHandle uint64

func (h ViewHandle) String() string {
	return fmt.Sprintf("%#x", uint64(h))
}

// ParseHandle parses a decimal or 0x-prefixed hexadecimal handle.
func ParseHandle(s string) (ViewHandle, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid view handle %q", s)
	}
	return ViewHandle(v), nil
}

// MarshalText implements encoding.TextMarshaler. Handles are written in hex.
func (h ViewHandle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *ViewHandle) UnmarshalText(text []byte) error {
	v, err := ParseHandle(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (h *ViewHandle) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	return h.UnmarshalText([]byte(strings.Trim(s, `"`)))
}

// View is a panel placed in the workspace. Rect is derived data: it is
// overwritten by every [Workspace.Update] and meaningless before the first.
type View struct {
	Handle ViewHandle
	Rect   Rect
}

// Container is an ordered group of views sharing one leaf slot, such as a
// tab group. Every view in a container receives the same rectangle.
type Container struct {
	Views []View
}

// Len returns the number of views in the container.
func (c Container) Len() int { return len(c.Views) }

// Contains reports whether any view in the container has handle h.
func (c Container) Contains(h ViewHandle) bool {
	for _, v := range c.Views {
		if v.Handle == h {
			return true
		}
	}
	return false
}

// Handles returns the handles of the container's views in order.
func (c Container) Handles() []ViewHandle {
	out := make([]ViewHandle, len(c.Views))
	for i, v := range c.Views {
		out[i] = v.Handle
	}
	return out
}

func (c *Container) push(h ViewHandle) {
	c.Views = append(c.Views, View{Handle: h})
}
