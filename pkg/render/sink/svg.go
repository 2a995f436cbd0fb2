package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/viewdock/pkg/dock"
)

// DefaultBackground is the fill behind all views, matching the cleared
// framebuffer of a native host.
const DefaultBackground = "#000000"

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	background string
	border     *float64
}

// WithLabels draws each visible view's handle at its centre.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBackground sets the background fill. "none" disables it.
func WithBackground(fill string) SVGOption { return func(r *svgRenderer) { r.background = fill } }

// WithBorder overrides the layout's window border.
func WithBorder(b float64) SVGOption { return func(r *svgRenderer) { r.border = &b } }

// RenderSVG draws l as an SVG document. Each view becomes a rect filled with
// [Fill] of its handle, inset by the window border, in painting order.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := svgRenderer{background: DefaultBackground}
	for _, opt := range opts {
		opt(&r)
	}
	border := l.Border
	if r.border != nil {
		border = *r.border
	}

	f := l.Frame
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g" width="%.0f" height="%.0f">`+"\n",
		f.X, f.Y, f.Width, f.Height, f.Width, f.Height)

	if r.background != "" && r.background != "none" {
		fmt.Fprintf(&buf, `  <rect class="background" x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
			f.X, f.Y, f.Width, f.Height, html.EscapeString(r.background))
	}

	for _, b := range l.Blocks {
		rect := b.Rect.Inset(border)
		if rect.Empty() {
			continue
		}
		fmt.Fprintf(&buf, `  <rect id="view-%s" class="view" data-depth="%d" data-side="%s" x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
			b.Handle, b.Depth, b.Side, rect.X, rect.Y, rect.Width, rect.Height, Fill(b.Handle))
	}

	if r.labels {
		for _, b := range l.Visible() {
			renderLabel(&buf, b)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Fill returns the CSS colour of a view: the low 24 bits of its handle.
func Fill(h dock.ViewHandle) string {
	return fmt.Sprintf("#%06x", uint64(h)&0xffffff)
}

func renderLabel(buf *bytes.Buffer, b Block) {
	cx := b.Rect.X + b.Rect.Width/2
	cy := b.Rect.Y + b.Rect.Height/2
	size := min(b.Rect.Width, b.Rect.Height) / 8
	if size < 6 {
		return
	}
	fmt.Fprintf(buf, `  <text class="label" x="%g" y="%g" font-family="monospace" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
		cx, cy, size, labelColor(b.Handle), b.Handle)
}

// labelColor picks black or white, whichever contrasts with the fill.
func labelColor(h dock.ViewHandle) string {
	r := float64((h >> 16) & 0xff)
	g := float64((h >> 8) & 0xff)
	b := float64(h & 0xff)
	if 0.299*r+0.587*g+0.114*b > 140 {
		return "#000000"
	}
	return "#ffffff"
}
