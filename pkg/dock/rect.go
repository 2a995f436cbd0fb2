package dock

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle. Coordinates grow right and down.
type Rect struct {
	X      float64 `json:"x" toml:"x" yaml:"x"`
	Y      float64 `json:"y" toml:"y" yaml:"y"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// NewRect returns the rectangle at (x, y) with the given extent.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Inset shrinks the rectangle by d on every edge. Extents never go negative.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
	if out.Width < 0 {
		out.X, out.Width = r.X+r.Width/2, 0
	}
	if out.Height < 0 {
		out.Y, out.Height = r.Y+r.Height/2, 0
	}
	return out
}

// Scale multiplies every coordinate by f.
func (r Rect) Scale(f float64) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, Width: r.Width * f, Height: r.Height * f}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// SubdivideHorizontal cuts r into a top part holding ratio of the height and
// a bottom part holding the rest. The bottom height is the remainder, so
// top.Height+bottom.Height == r.Height.
func (r Rect) SubdivideHorizontal(ratio float64) (top, bottom Rect) {
	h, rest := splitExtent(r.Height, ratio)
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
	bottom = Rect{X: r.X, Y: r.Y + h, Width: r.Width, Height: rest}
	return top, bottom
}

// SubdivideVertical cuts r into a left part holding ratio of the width and a
// right part holding the rest. The right width is the remainder, so
// left.Width+right.Width == r.Width.
func (r Rect) SubdivideVertical(ratio float64) (left, right Rect) {
	w, rest := splitExtent(r.Width, ratio)
	left = Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
	right = Rect{X: r.X + w, Y: r.Y, Width: rest, Height: r.Height}
	return left, right
}

// splitExtent divides total into near = total*ratio and far = total-near
// such that near+far == total in floating point. near is snapped to the ulp
// grid of total, which makes the subtraction exact.
func splitExtent(total, ratio float64) (near, far float64) {
	near = total * ratio
	if ulp := math.Nextafter(total, math.Inf(1)) - total; ulp > 0 && !math.IsInf(ulp, 0) {
		near = math.Round(near/ulp) * ulp
	}
	return near, total - near
}
