package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestLogPipelineHooks(t *testing.T) {
	var buf bytes.Buffer
	h := LogPipelineHooks{Logger: newTestLogger(&buf)}
	ctx := context.Background()

	h.OnLoadStart(ctx, "demo.toml")
	h.OnLoadComplete(ctx, "demo.toml", 4, time.Millisecond, nil)
	h.OnLayoutStart(ctx, 4)
	h.OnLayoutComplete(ctx, 4, time.Millisecond, nil)
	h.OnRenderStart(ctx, []string{"svg", "png"})
	h.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"Loading script", "Loaded script", "demo.toml", "Computed layout", "svg,png", "Render failed", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHTTPHooks(t *testing.T) {
	var buf bytes.Buffer
	h := LogHTTPHooks{Logger: newTestLogger(&buf)}
	ctx := context.Background()

	h.OnRequest(ctx, "POST", "/v1/workspaces")
	h.OnResponse(ctx, "POST", "/v1/workspaces", 201, time.Millisecond)
	h.OnError(ctx, "GET", "/v1/workspaces/x", errors.New("store down"))

	out := buf.String()
	for _, want := range []string{"POST", "/v1/workspaces", "201", "store down"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogWorkspaceHooks(t *testing.T) {
	var buf bytes.Buffer
	h := LogWorkspaceHooks{Logger: newTestLogger(&buf)}
	ctx := context.Background()

	h.OnWorkspaceCreate(ctx, "ws-1", 3)
	h.OnSplit(ctx, "ws-1", "split_top", true, 4)
	h.OnSplit(ctx, "ws-1", "split_by_handle", false, 4)
	h.OnWorkspaceDelete(ctx, "ws-1")

	out := buf.String()
	for _, want := range []string{"Workspace created", "ws-1", "split_top", "Split target not found", "split_by_handle", "Workspace deleted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksFallBackToDefaultLogger(t *testing.T) {
	var _ PipelineHooks = LogPipelineHooks{}
	var _ HTTPHooks = LogHTTPHooks{}
	var _ WorkspaceHooks = LogWorkspaceHooks{}

	if (LogPipelineHooks{}).logger() == nil || (LogWorkspaceHooks{}).logger() == nil {
		t.Error("logger() should never be nil")
	}
}
