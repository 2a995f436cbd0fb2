package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/viewdock/pkg/errors"
	"github.com/matzehuels/viewdock/pkg/observability"
	"github.com/matzehuels/viewdock/pkg/script"
)

// Load returns a validated copy of the script named by opts. An inline
// Script takes precedence over ScriptPath.
func Load(ctx context.Context, opts Options) (*script.Script, error) {
	source := sourceName(opts)
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	s, err := load(opts)

	n := 0
	if s != nil {
		n = len(s.Ops)
	}
	observability.Pipeline().OnLoadComplete(ctx, source, n, time.Since(start), err)
	return s, err
}

func load(opts Options) (*script.Script, error) {
	if opts.Script != nil {
		s := opts.Script.Clone()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if opts.ScriptPath == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "script or script path is required")
	}
	return script.ReadFile(opts.ScriptPath)
}

func sourceName(opts Options) string {
	switch {
	case opts.Script != nil && opts.Script.Name != "":
		return opts.Script.Name
	case opts.Script != nil:
		return "inline"
	default:
		return opts.ScriptPath
	}
}
