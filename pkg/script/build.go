package script

import (
	"github.com/matzehuels/viewdock/pkg/dock"
)

// Miss records an op whose target handle was not present when it ran.
type Miss struct {
	Index int `json:"index"`
	Op    Op  `json:"op"`
}

// Report summarizes a replay.
type Report struct {
	Applied int    `json:"applied"`
	Missed  []Miss `json:"missed,omitempty"`
}

// OK reports whether every op found its target.
func (r Report) OK() bool { return len(r.Missed) == 0 }

// Build validates s, replays it on a new workspace and computes the layout.
// Errors from dock.New are returned unchanged so callers can test for
// errors.ErrCodeIllegalSize.
func Build(s *Script) (*dock.Workspace, Report, error) {
	var rep Report
	if err := s.Validate(); err != nil {
		return nil, rep, err
	}
	ws, err := dock.New(s.Bounds)
	if err != nil {
		return nil, rep, err
	}
	rep = Replay(ws, s.Ops)
	ws.Update()
	return ws, rep, nil
}

// Replay applies ops to ws in order without recomputing geometry.
func Replay(ws *dock.Workspace, ops []Op) Report {
	var rep Report
	for i, op := range ops {
		if op.ApplyTo(ws) {
			rep.Applied++
			continue
		}
		rep.Missed = append(rep.Missed, Miss{Index: i, Op: op})
	}
	return rep
}
