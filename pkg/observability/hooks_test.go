package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "demo.toml")
	p.OnLoadComplete(ctx, "demo.toml", 4, time.Second, nil)
	p.OnLayoutStart(ctx, 4)
	p.OnLayoutComplete(ctx, 4, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/v1/workspaces")
	h.OnResponse(ctx, "GET", "/v1/workspaces", 200, time.Second)
	h.OnError(ctx, "GET", "/v1/workspaces", nil)

	w := NoopWorkspaceHooks{}
	w.OnWorkspaceCreate(ctx, "id", 0)
	w.OnSplit(ctx, "id", "split_top", true, 1)
	w.OnWorkspaceDelete(ctx, "id")
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
type testWorkspaceHooks struct{ NoopWorkspaceHooks }

func TestGlobalHooksRegistry(t *testing.T) {
	t.Cleanup(Reset)

	tests := []struct {
		name      string
		set       func()
		isDefault func() bool
		isCustom  func() bool
	}{
		{
			name: "pipeline",
			set:  func() { SetPipelineHooks(&testPipelineHooks{}) },
			isDefault: func() bool {
				_, ok := Pipeline().(NoopPipelineHooks)
				return ok
			},
			isCustom: func() bool {
				_, ok := Pipeline().(*testPipelineHooks)
				return ok
			},
		},
		{
			name: "cache",
			set:  func() { SetCacheHooks(&testCacheHooks{}) },
			isDefault: func() bool {
				_, ok := Cache().(NoopCacheHooks)
				return ok
			},
			isCustom: func() bool {
				_, ok := Cache().(*testCacheHooks)
				return ok
			},
		},
		{
			name: "http",
			set:  func() { SetHTTPHooks(&testHTTPHooks{}) },
			isDefault: func() bool {
				_, ok := HTTP().(NoopHTTPHooks)
				return ok
			},
			isCustom: func() bool {
				_, ok := HTTP().(*testHTTPHooks)
				return ok
			},
		},
		{
			name: "workspace",
			set:  func() { SetWorkspaceHooks(&testWorkspaceHooks{}) },
			isDefault: func() bool {
				_, ok := Workspace().(NoopWorkspaceHooks)
				return ok
			},
			isCustom: func() bool {
				_, ok := Workspace().(*testWorkspaceHooks)
				return ok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			if !tt.isDefault() {
				t.Fatal("default hooks should be no-ops")
			}
			tt.set()
			if !tt.isCustom() {
				t.Fatal("custom hooks were not registered")
			}
			Reset()
			if !tt.isDefault() {
				t.Error("Reset() should restore the no-op hooks")
			}
		})
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testWorkspaceHooks{}
	SetWorkspaceHooks(custom)
	SetWorkspaceHooks(nil)
	SetPipelineHooks(nil)

	if Workspace() != custom {
		t.Error("SetWorkspaceHooks(nil) should be ignored")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("SetPipelineHooks(nil) should leave the default in place")
	}
}
