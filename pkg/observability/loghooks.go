package observability

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a logger. Start events are
// logged at debug level, completions at info level, failures at error level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

func (h LogPipelineHooks) OnLoadStart(_ context.Context, source string) {
	h.logger().Debug("Loading script", "source", source)
}

func (h LogPipelineHooks) OnLoadComplete(_ context.Context, source string, opCount int, d time.Duration, err error) {
	if err != nil {
		h.logger().Error("Load failed", "source", source, "err", err)
		return
	}
	h.logger().Info("Loaded script", "source", source, "ops", opCount, "took", d.Round(time.Millisecond))
}

func (h LogPipelineHooks) OnLayoutStart(_ context.Context, opCount int) {
	h.logger().Debug("Replaying operations", "ops", opCount)
}

func (h LogPipelineHooks) OnLayoutComplete(_ context.Context, viewCount int, d time.Duration, err error) {
	if err != nil {
		h.logger().Error("Layout failed", "err", err)
		return
	}
	h.logger().Info("Computed layout", "views", viewCount, "took", d.Round(time.Millisecond))
}

func (h LogPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger().Debug("Rendering", "formats", strings.Join(formats, ","))
}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger().Error("Render failed", "formats", strings.Join(formats, ","), "err", err)
		return
	}
	h.logger().Info("Rendered", "formats", strings.Join(formats, ","), "took", d.Round(time.Millisecond))
}

// LogHTTPHooks writes one line per served request.
type LogHTTPHooks struct {
	Logger *log.Logger
}

func (h LogHTTPHooks) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

func (h LogHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.logger().Debug("Request", "method", method, "path", path)
}

func (h LogHTTPHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger().Info("Response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

func (h LogHTTPHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger().Error("Request failed", "method", method, "path", path, "err", err)
}

// LogWorkspaceHooks logs session lifecycle events. Splits whose target was
// missing are logged at warn level.
type LogWorkspaceHooks struct {
	Logger *log.Logger
}

func (h LogWorkspaceHooks) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

func (h LogWorkspaceHooks) OnWorkspaceCreate(_ context.Context, id string, opCount int) {
	h.logger().Info("Workspace created", "id", id, "ops", opCount)
}

func (h LogWorkspaceHooks) OnSplit(_ context.Context, id, kind string, found bool, viewCount int) {
	if !found {
		h.logger().Warn("Split target not found", "id", id, "op", kind)
		return
	}
	h.logger().Debug("Split", "id", id, "op", kind, "views", viewCount)
}

func (h LogWorkspaceHooks) OnWorkspaceDelete(_ context.Context, id string) {
	h.logger().Info("Workspace deleted", "id", id)
}
