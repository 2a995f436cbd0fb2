package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/observability"
	"github.com/matzehuels/viewdock/pkg/render"
	"github.com/matzehuels/viewdock/pkg/render/sink"
	"github.com/matzehuels/viewdock/pkg/render/treeviz"
)

// Render generates output artifacts in the requested formats. ws is needed
// for the tree formats (dot, tree); l for everything else.
func Render(ctx context.Context, ws *dock.Workspace, l sink.Layout, name string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts, err := renderFormats(ctx, ws, l, name, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, ws *dock.Workspace, l sink.Layout, name string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, ws, l, name, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, ws *dock.Workspace, l sink.Layout, name, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, buildSVGOptions(opts)...), nil
	case FormatPDF:
		return sink.RenderPDF(l, sink.WithPDFSVGOptions(buildSVGOptions(opts)...))
	case FormatPNG:
		if opts.PNGEngine == PNGEngineRsvg {
			return render.ToPNG(sink.RenderSVG(l, buildSVGOptions(opts)...), opts.Scale)
		}
		bg, err := render.ParseColor(opts.Background)
		if err != nil {
			return nil, err
		}
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithPNGBackground(bg)}
		if opts.Inset {
			pngOpts = append(pngOpts, sink.WithPNGBorder())
		}
		return sink.RenderPNG(l, pngOpts...)
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONName(name)}
		if opts.VisibleOnly {
			jsonOpts = append(jsonOpts, sink.WithJSONVisibleOnly())
		}
		return sink.RenderJSON(l, jsonOpts...)
	case FormatDOT:
		if ws == nil {
			return nil, fmt.Errorf("dot output needs a workspace")
		}
		return []byte(treeviz.ToDOT(ws, treeviz.Options{Geometry: opts.Labels})), nil
	case FormatTree:
		if ws == nil {
			return nil, fmt.Errorf("tree output needs a workspace")
		}
		return treeviz.RenderSVG(ctx, treeviz.ToDOT(ws, treeviz.Options{Geometry: opts.Labels}))
	default:
		return nil, ValidateFormat(format)
	}
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithBackground(opts.Background)}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	return svgOpts
}
