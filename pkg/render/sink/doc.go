// Package sink renders a computed workspace layout to output formats.
//
// # Overview
//
// Renderers never read a [dock.Workspace] directly. [FromWorkspace] flattens
// it into a [Layout]: the frame, the window border and one [Block] per view in
// painting order (for every split, its left views, then its right views, then
// the left subtree, then the right subtree), together with a serializable
// copy of the split tree. Views painted later cover earlier ones, so a Full
// split's second occupant hides its first.
//
// # Formats
//
//   - [RenderSVG]: one rect per view, filled with the handle's colour
//   - [RenderJSON]: frame, blocks and tree; read back with [ReadJSON]
//   - [RenderPNG]: a solid-fill raster, painted in process
//   - [RenderPDF]: SVG converted with rsvg-convert
//
// All renderers are pure functions of the layout and safe for concurrent use.
//
// [dock.Workspace]: github.com/matzehuels/viewdock/pkg/dock.Workspace
package sink
