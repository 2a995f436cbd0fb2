// Package render provides rasterization and format conversion shared by the
// workspace renderers.
//
// # Overview
//
// The renderers themselves live in subpackages:
//
//   - [sink]: the workspace as SVG, JSON, PNG or PDF
//   - [treeviz]: the split tree as a Graphviz node-link diagram
//
// This package holds what they share: a [Canvas] that fills view rectangles
// into an in-memory image, and SVG conversion through rsvg-convert.
//
// # Canvas
//
// A [Canvas] paints solid rectangles the way a framebuffer would. Coordinates
// are truncated to whole pixels and clipped to the canvas:
//
//	c := render.NewCanvas(1024, 768, color.Black)
//	c.FillRect(view.Rect, render.HandleColor(view.Handle))
//	err := c.Encode(w)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/viewdock/pkg/render/sink
// [treeviz]: github.com/matzehuels/viewdock/pkg/render/treeviz
package render
