package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/matzehuels/viewdock/pkg/errors"
	"github.com/matzehuels/viewdock/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.Color
	border     bool
}

// WithScale sets the PNG scale factor (default 1, one pixel per unit).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the colour behind all views (default black).
func WithPNGBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithPNGBorder insets each view by the layout's window border.
func WithPNGBorder() PNGOption {
	return func(r *pngRenderer) { r.border = true }
}

// RenderPNG paints l into an image covering the origin to the bottom-right
// corner of the frame and encodes it as PNG. Views are filled in painting
// order with [render.HandleColor], so later views cover earlier ones.
func RenderPNG(l Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, background: color.Black}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errors.ValidateScale(r.scale); err != nil {
		return nil, err
	}

	c := Paint(l, r.background, r.border)
	if r.scale != 1 {
		c = c.Scaled(r.scale)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Paint fills every block of l into a new canvas.
func Paint(l Layout, bg color.Color, inset bool) *render.Canvas {
	w := int(math.Ceil(l.Frame.Right()))
	h := int(math.Ceil(l.Frame.Bottom()))
	c := render.NewCanvas(w, h, bg)
	for _, b := range l.Blocks {
		rect := b.Rect
		if inset {
			rect = rect.Inset(l.Border)
		}
		c.FillRect(rect, render.HandleColor(b.Handle))
	}
	return c
}
