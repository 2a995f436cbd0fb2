package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/observability"
	"github.com/matzehuels/viewdock/pkg/render/sink"
	"github.com/matzehuels/viewdock/pkg/script"
)

// =============================================================================
// Layout Generation
// =============================================================================

// BuildLayout replays s into a fresh workspace and captures the result.
// Split operations whose target is missing do not fail the build; they are
// listed in the returned report.
func BuildLayout(ctx context.Context, s *script.Script) (*dock.Workspace, sink.Layout, script.Report, error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(s.Ops))

	ws, report, err := script.Build(s)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, 0, time.Since(start), err)
		return nil, sink.Layout{}, report, err
	}
	l := sink.FromWorkspace(ws)

	observability.Pipeline().OnLayoutComplete(ctx, ws.Len(), time.Since(start), nil)
	return ws, l, report, nil
}

// LayoutJSON builds s and exports the layout as JSON.
func LayoutJSON(ctx context.Context, s *script.Script) ([]byte, error) {
	_, l, _, err := BuildLayout(ctx, s)
	if err != nil {
		return nil, err
	}
	return sink.RenderJSON(l, sink.WithJSONName(s.Name))
}
