package render

import (
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/errors"
)

// HandleColor maps a view handle to an opaque colour using its low 24 bits
// as 0xRRGGBB.
func HandleColor(h dock.ViewHandle) color.NRGBA {
	return color.NRGBA{
		R: uint8(h >> 16),
		G: uint8(h >> 8),
		B: uint8(h),
		A: 0xff,
	}
}

// ParseColor parses a CSS-style colour: "#rgb", "#rrggbb", "black", "white"
// or "none"/"transparent".
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "none", "transparent":
		return color.NRGBA{}, nil
	case "black":
		return color.NRGBA{A: 0xff}, nil
	case "white":
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}

	hex, ok := strings.CutPrefix(v, "#")
	if ok && len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if !ok || len(hex) != 6 {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid colour %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

// Canvas is an in-memory RGBA image that views are painted into.
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas returns a width x height canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	return &Canvas{img: imaging.New(max(width, 0), max(height, 0), bg)}
}

// Bounds returns the pixel bounds of the canvas.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Image returns the underlying image.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// FillRect paints r with col. The rectangle is truncated to whole pixels
// (origin and extent separately) and clipped to the canvas. It reports
// whether any pixel was painted.
func (c *Canvas) FillRect(r dock.Rect, col color.Color) bool {
	px := pixelRect(r).Intersect(c.img.Bounds())
	if px.Empty() {
		return false
	}
	c.img = imaging.Paste(c.img, imaging.New(px.Dx(), px.Dy(), col), px.Min)
	return true
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	b := c.img.Bounds()
	c.img = imaging.New(b.Dx(), b.Dy(), col)
}

// Scaled returns a copy of the canvas resized by f with nearest-neighbour
// sampling, so solid fills stay solid.
func (c *Canvas) Scaled(f float64) *Canvas {
	if f == 1 {
		return &Canvas{img: imaging.Clone(c.img)}
	}
	b := c.img.Bounds()
	w := int(math.Round(float64(b.Dx()) * f))
	h := int(math.Round(float64(b.Dy()) * f))
	return &Canvas{img: imaging.Resize(c.img, max(w, 1), max(h, 1), imaging.NearestNeighbor)}
}

// Encode writes the canvas as PNG.
func (c *Canvas) Encode(w io.Writer) error {
	return imaging.Encode(w, c.img, imaging.PNG)
}

func pixelRect(r dock.Rect) image.Rectangle {
	x0 := int(max(r.X, 0))
	y0 := int(max(r.Y, 0))
	return image.Rect(x0, y0, x0+int(max(r.Width, 0)), y0+int(max(r.Height, 0)))
}
