// Package treeviz renders a workspace's split tree as a node-link diagram.
//
// # Overview
//
// Where [sink] draws what the user sees, treeviz draws how it is built: one
// box per split labelled with its direction and ratio, one box per container
// listing its view handles, and an edge from every split to each side. Empty
// sides are drawn as dashed points so the shape of the tree stays visible.
//
// # Usage
//
//	dot := treeviz.ToDOT(ws, treeviz.Options{})
//	svg, err := treeviz.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in process; no system installation is needed.
//
// [sink]: github.com/matzehuels/viewdock/pkg/render/sink
package treeviz
