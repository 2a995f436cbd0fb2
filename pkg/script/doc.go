// Package script reads, writes and replays layout scripts.
//
// # Overview
//
// A layout script is a serializable description of a workspace: its bounding
// rectangle plus the ordered insertions that build the split tree. Replaying a
// script against a fresh [dock.Workspace] always produces the same layout, so
// scripts are the unit that the CLI renders, the server stores in sessions and
// the pipeline caches by content hash.
//
// # Formats
//
// Scripts are accepted as JSON, TOML or YAML. [ReadFile] and [WriteFile] pick
// the format from the file extension (.json, .toml, .yaml, .yml):
//
//	name = "demo"
//
//	[bounds]
//	x = 0
//	y = 0
//	width = 1024
//	height = 768
//
//	[[ops]]
//	op = "split_top"
//	direction = "vertical"
//	handle = "0xff"
//
//	[[ops]]
//	op = "split_by_handle"
//	direction = "horizontal"
//	target = "0xff"
//	handle = 0x5522
//
// Handles may be written as integers or as hex strings. Directions are the
// names accepted by [dock.ParseDirection].
//
// # Replay
//
// [Build] validates a script, creates the workspace, applies every op in order
// and calls [dock.Workspace.Update]. An op whose target handle is not present
// leaves the tree unchanged; [Build] lists such ops in the returned [Report]
// rather than failing.
//
// [dock.Workspace]: github.com/matzehuels/viewdock/pkg/dock.Workspace
// [dock.ParseDirection]: github.com/matzehuels/viewdock/pkg/dock.ParseDirection
// [dock.Workspace.Update]: github.com/matzehuels/viewdock/pkg/dock.Workspace.Update
package script
