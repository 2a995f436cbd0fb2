// Package pkg provides the core libraries for viewdock panel layout.
//
// # Overview
//
// viewdock arranges views inside a rectangular workspace by recursively
// splitting it into halves. Every split holds two slots; a slot is empty,
// holds a stack of views, or holds a nested split. The pkg directory is
// organized into these areas:
//
//  1. [dock] - Domain logic (rectangles, the split tree, the workspace)
//  2. [script] - Layout scripts: split operations stored as JSON, TOML or YAML
//  3. [render] - Output: SVG, PNG, PDF, JSON and Graphviz tree diagrams
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache], [session] - Infrastructure for the CLI and the HTTP server
//
// # Architecture
//
// The typical data flow through viewdock:
//
//	Layout script (.json/.toml/.yaml)
//	         ↓
//	    [script] package (parse, validate, replay ops)
//	         ↓
//	    [dock] package (split tree + rectangle assignment)
//	         ↓
//	    [render/sink] package (flatten to blocks, draw)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Replay the demo layout and render it:
//
//	import (
//	    "github.com/matzehuels/viewdock/pkg/render/sink"
//	    "github.com/matzehuels/viewdock/pkg/script"
//	)
//
//	ws, report, err := script.Build(script.Demo())
//	if err != nil {
//	    return err
//	}
//	ws.Update()
//	svg := sink.RenderSVG(sink.FromWorkspace(ws), sink.WithLabels())
//
// Build the workspace by hand instead of through a script:
//
//	ws, _ := dock.New(dock.NewRect(0, 0, 1024, 768))
//	ws.SplitTop(0xff, dock.Vertical)
//	ws.SplitByViewHandle(dock.Horizontal, 0xff, 0xff00)
//	ws.Update()
//
// # Pipeline
//
// [pipeline.Runner] wraps the steps above with a [cache.Cache] so repeated
// runs of the same script skip layout and rendering:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    ScriptPath: "examples/demo.toml",
//	    Formats:    []string{"svg", "png"},
//	})
//
// # Error Handling
//
// Errors carry a code from [errors] so the CLI and HTTP server can map them
// to exit messages and status codes. Ops whose target view is missing are
// not errors; they are returned in a [script.Report].
//
// [dock]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/dock
// [script]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/script
// [render]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/cache
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/cache#Cache
// [session]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/session
// [errors]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/errors
// [script.Report]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/script#Report
package pkg
