// Package dock computes layout geometry for a dockable-panel workspace.
//
// # Overview
//
// A [Workspace] owns a binary tree of [Split] nodes that subdivides a
// bounding [Rect] among views. Views are identified by opaque, caller-assigned
// [ViewHandle] values; the package never interprets or de-duplicates them.
//
// The workflow is always the same:
//
//  1. Construct a workspace over a bounding rectangle with [New].
//  2. Grow the tree with [Workspace.SplitTop] and [Workspace.SplitByViewHandle].
//  3. Call [Workspace.Update] to recompute every view's rectangle.
//  4. Read the geometry with [Workspace.Walk] or [Workspace.Views].
//
//	ws, err := dock.New(dock.NewRect(0, 0, 1024, 768))
//	if err != nil {
//	    return err
//	}
//	ws.SplitTop(0xff, dock.Vertical)
//	ws.SplitTop(0xff00ff, dock.Vertical)
//	ws.SplitByViewHandle(dock.Vertical, 0xff00ff, 0x00ff00)
//	ws.Update()
//	for _, v := range ws.Views() {
//	    fmt.Println(v.Handle, v.Rect)
//	}
//
// # Split Slots
//
// Each side of a split is a slot in exactly one of three states: empty, a
// leaf holding a [Container] of views, or a node delegating to a child split.
// Slots are only changed by the insertion operations, so a side can never
// hold views and a child at the same time.
//
// # Geometry
//
// [Rect.SubdivideVertical] and [Rect.SubdivideHorizontal] split a rectangle
// by ratio. The far half is computed as the remainder of the original extent,
// so the two halves always sum exactly to the input.
//
// Geometry is only written by [Workspace.Update]. Mutations do not propagate
// automatically; callers must update before reading rectangles.
//
// # Concurrency
//
// A Workspace is not safe for concurrent use. Hosts that share one across
// goroutines must serialize insertions and updates.
package dock
