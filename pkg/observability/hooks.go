// Package observability lets hosts watch viewdock at work without the
// libraries depending on a metrics or tracing backend.
//
// Four event families are exposed, each as an interface with a no-op
// default held in a process-wide registry:
//
//   - [PipelineHooks]: load, layout and render stages of [pipeline.Runner]
//   - [CacheHooks]: layout and artifact cache lookups
//   - [HTTPHooks]: requests served by the HTTP API
//   - [WorkspaceHooks]: live workspace sessions being created, split and deleted
//
// Hosts register implementations once at startup; libraries fetch the
// current implementation at the call site:
//
//	observability.SetWorkspaceHooks(observability.LogWorkspaceHooks{Logger: logger})
//	defer observability.Reset()
//
//	observability.Workspace().OnSplit(ctx, id, "split_by_handle", found, views)
//
// [LogPipelineHooks], [LogHTTPHooks] and [LogWorkspaceHooks] write events to
// a charmbracelet/log logger; `viewdock serve` installs them.
//
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/viewdock/pkg/pipeline#Runner
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// Load events: reading and validating a layout script.
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, opCount int, duration time.Duration, err error)

	// Layout events: replaying the script and recomputing geometry.
	OnLayoutStart(ctx context.Context, opCount int)
	OnLayoutComplete(ctx context.Context, viewCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a request that failed with a server error.
	OnError(ctx context.Context, method, path string, err error)
}

// WorkspaceHooks receives lifecycle events of server-side workspaces.
type WorkspaceHooks interface {
	// OnWorkspaceCreate fires after a session is stored. opCount is the
	// number of ops it starts with (non-zero when created from a script).
	OnWorkspaceCreate(ctx context.Context, id string, opCount int)

	// OnSplit fires for every split request. found is false when the
	// target handle was absent and the workspace was left unchanged.
	OnSplit(ctx context.Context, id, kind string, found bool, viewCount int)

	OnWorkspaceDelete(ctx context.Context, id string)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// NoopWorkspaceHooks is a no-op implementation of WorkspaceHooks.
type NoopWorkspaceHooks struct{}

func (NoopWorkspaceHooks) OnWorkspaceCreate(context.Context, string, int)     {}
func (NoopWorkspaceHooks) OnSplit(context.Context, string, string, bool, int) {}
func (NoopWorkspaceHooks) OnWorkspaceDelete(context.Context, string)          {}

// registry holds the current hooks. The zero value is not usable; see
// newRegistry.
type registry struct {
	mu        sync.RWMutex
	pipeline  PipelineHooks
	cache     CacheHooks
	http      HTTPHooks
	workspace WorkspaceHooks
}

func newRegistry() *registry {
	return &registry{
		pipeline:  NoopPipelineHooks{},
		cache:     NoopCacheHooks{},
		http:      NoopHTTPHooks{},
		workspace: NoopWorkspaceHooks{},
	}
}

var global = newRegistry()

// set stores h in *dst under the registry lock unless h is nil.
func set[T any](dst *T, h T, isNil bool) {
	if isNil {
		return
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	*dst = h
}

func get[T any](src *T) T {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return *src
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { set(&global.pipeline, h, h == nil) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { set(&global.cache, h, h == nil) }

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { set(&global.http, h, h == nil) }

// SetWorkspaceHooks registers workspace hooks. A nil h is ignored.
func SetWorkspaceHooks(h WorkspaceHooks) { set(&global.workspace, h, h == nil) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return get(&global.pipeline) }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return get(&global.cache) }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return get(&global.http) }

// Workspace returns the registered workspace hooks.
func Workspace() WorkspaceHooks { return get(&global.workspace) }

// Reset restores all hooks to their no-op defaults. Tests and short-lived
// hosts such as `viewdock serve` call it on exit.
func Reset() {
	fresh := newRegistry()
	global.mu.Lock()
	defer global.mu.Unlock()
	global.pipeline = fresh.pipeline
	global.cache = fresh.cache
	global.http = fresh.http
	global.workspace = fresh.workspace
}
