package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/render"
	"github.com/matzehuels/viewdock/pkg/render/sink"
)

// Options configures diagram generation.
type Options struct {
	// Geometry adds each view's rectangle to its container label.
	Geometry bool
	// LeftToRight lays the tree out horizontally instead of top-down.
	LeftToRight bool
}

// ToDOT converts the split tree of ws to Graphviz DOT. Containers are filled
// with the colour of their first view.
func ToDOT(ws *dock.Workspace, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.LeftToRight {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=monospace, fontsize=14];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if root := ws.Root(); root != nil {
		w := &dotWriter{buf: &buf, opts: opts}
		w.split(root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
	next int
}

func (w *dotWriter) id(prefix string) string {
	w.next++
	return fmt.Sprintf("%s%d", prefix, w.next)
}

func (w *dotWriter) split(s *dock.Split) string {
	id := w.id("s")
	fmt.Fprintf(w.buf, "  %s [label=%q, shape=ellipse, style=filled, fillcolor=lightgrey];\n",
		id, fmt.Sprintf("%s %s", s.Direction(), strconv.FormatFloat(s.Ratio(), 'g', 4, 64)))

	for _, side := range []dock.Side{dock.Left, dock.Right} {
		var child string
		switch s.Kind(side) {
		case dock.SlotEmpty:
			child = w.id("e")
			fmt.Fprintf(w.buf, "  %s [label=\"\", shape=point, style=dashed];\n", child)
		case dock.SlotLeaf:
			child = w.container(s.Container(side))
		case dock.SlotNode:
			child = w.split(s.Child(side))
		}
		fmt.Fprintf(w.buf, "  %s -> %s [label=%q];\n", id, child, side.String())
	}
	return id
}

func (w *dotWriter) container(c dock.Container) string {
	id := w.id("c")
	lines := make([]string, 0, c.Len())
	for _, v := range c.Views {
		line := v.Handle.String()
		if w.opts.Geometry {
			line += " " + v.Rect.String()
		}
		lines = append(lines, line)
	}
	fill := sink.Fill(c.Views[0].Handle)
	fmt.Fprintf(w.buf, "  %s [label=%q, fillcolor=%q, fontcolor=%q];\n",
		id, strings.Join(lines, "\n"), fill, fontColor(c.Views[0].Handle))
	return id
}

func fontColor(h dock.ViewHandle) string {
	c := render.HandleColor(h)
	if 0.299*float64(c.R)+0.587*float64(c.G)+0.114*float64(c.B) > 140 {
		return "black"
	}
	return "white"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's <svg> tag with a plain one whose
// width and height match the viewBox, so the diagram scales like sink output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
