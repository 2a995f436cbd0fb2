package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewdock/pkg/cache"
	"github.com/matzehuels/viewdock/pkg/observability"
	"github.com/matzehuels/viewdock/pkg/render/sink"
	"github.com/matzehuels/viewdock/pkg/script"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cache entries. Zero means cache.LayoutTTL for
	// layouts and cache.ArtifactTTL for artifacts.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	s, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Script = s
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.OpCount = len(s.Ops)
	if result.ScriptHash, err = cache.HashJSON(s); err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded script",
		"name", s.Name,
		"ops", len(s.Ops),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	ws, l, report, err := BuildLayout(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Workspace = ws
	result.Layout = l
	result.Report = report
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ViewCount = ws.Len()
	result.Stats.Depth = ws.Depth()

	for _, m := range report.Missed {
		r.Logger.Warn("target view not found", "op", m.Index, "target", m.Op.Target)
	}
	r.Logger.Info("computed layout",
		"views", ws.Len(),
		"depth", ws.Depth(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderWithCacheInfo renders every requested format, reusing cached
// artifacts when all of them are present.
func (r *Runner) renderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	// Compute cache key from layout data
	layoutData, err := sink.RenderJSON(res.Layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	name := res.Script.Name

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, name))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, res.Workspace, res.Layout, name, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, name))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.ArtifactTTL)); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Layout returns the JSON layout of s, served from the cache when possible.
// The bool reports a cache hit.
func (r *Runner) Layout(ctx context.Context, s *script.Script, refresh bool) ([]byte, bool, error) {
	if err := s.Validate(); err != nil {
		return nil, false, err
	}
	scriptHash, err := cache.HashJSON(s)
	if err != nil {
		return nil, false, err
	}
	opts := Options{}
	key := r.Keyer.LayoutKey(scriptHash, opts.LayoutKeyOpts())

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "layout")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	data, err := LayoutJSON(ctx, s)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.LayoutTTL)); err == nil {
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return data, false, nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
