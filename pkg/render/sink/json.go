package sink

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/errors"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name    string
	visible bool
}

// WithJSONName records the script name in the output.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONVisibleOnly omits blocks that are fully covered by later blocks.
func WithJSONVisibleOnly() JSONOption { return func(r *jsonRenderer) { r.visible = true } }

type jsonOutput struct {
	Name   string    `json:"name,omitempty"`
	Frame  dock.Rect `json:"frame"`
	Border float64   `json:"border"`
	Blocks []Block   `json:"blocks"`
	Tree   *TreeNode `json:"tree,omitempty"`
}

// RenderJSON exports the layout as a pretty-printed JSON document:
//
//	{
//	  "frame": {"x": 0, "y": 0, "width": 1024, "height": 768},
//	  "border": 4,
//	  "blocks": [{"handle": "0xff", "index": 0, "rect": {...}, "depth": 0, "side": "left"}],
//	  "tree": {"direction": "full", "ratio": 1, "left": {...}, "right": {...}}
//	}
//
// Blocks are listed in painting order. The output can be read back with
// [ReadJSON] and rendered to any other format.
func RenderJSON(l Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	blocks := l.Blocks
	if r.visible {
		blocks = l.Visible()
	}
	if blocks == nil {
		blocks = []Block{}
	}

	return json.MarshalIndent(jsonOutput{
		Name:   r.name,
		Frame:  l.Frame,
		Border: l.Border,
		Blocks: blocks,
		Tree:   l.Tree,
	}, "", "  ")
}

// ReadJSON decodes a document written by [RenderJSON].
func ReadJSON(r io.Reader) (Layout, error) {
	var out jsonOutput
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	return Layout{
		Frame:  out.Frame,
		Border: out.Border,
		Blocks: out.Blocks,
		Tree:   out.Tree,
	}, nil
}
