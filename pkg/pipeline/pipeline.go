// Package pipeline provides the core layout pipeline for viewdock.
//
// This package implements the complete load → layout → render pipeline that
// is shared by the CLI and the HTTP API. By centralizing this logic, both
// entry points validate, cache and render scripts the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a layout script from a file or take it inline, then validate it
//  2. Layout: Replay the script into a workspace and compute every view rectangle
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ScriptPath: "examples/demo.toml",
//	    Formats:    []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	s, err := pipeline.Load(ctx, opts)
//	ws, l, report, err := pipeline.BuildLayout(ctx, s)
//	artifacts, err := pipeline.Render(ctx, ws, l, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewdock/pkg/cache"
	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/errors"
	"github.com/matzehuels/viewdock/pkg/render"
	"github.com/matzehuels/viewdock/pkg/render/sink"
	"github.com/matzehuels/viewdock/pkg/script"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG scale factor (one pixel per layout unit).
	DefaultScale = 1.0

	// DefaultBackground is the colour behind all views.
	DefaultBackground = sink.DefaultBackground
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatTree = "tree"
)

// PNG engines. The imaging engine paints the layout directly; rsvg rasterizes
// the SVG output with rsvg-convert, so labels and the border inset match it.
const (
	PNGEngineImaging = "imaging"
	PNGEngineRsvg    = "rsvg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatTree: true,
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// Extension returns the file extension written for format.
// The split tree diagram is an SVG, so it gets ".tree.svg".
func Extension(format string) string {
	if format == FormatTree {
		return ".tree.svg"
	}
	return "." + format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options: Script wins over ScriptPath.
	Script     *script.Script `json:"script,omitempty"`
	ScriptPath string         `json:"-"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	Background  string   `json:"background,omitempty"`
	Inset       bool     `json:"inset,omitempty"` // inset PNG fills by the window border
	PNGEngine   string   `json:"png_engine,omitempty"`
	VisibleOnly bool     `json:"visible_only,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Script is the validated script that was laid out.
	Script *script.Script

	// ScriptHash is the content hash of the script.
	ScriptHash string

	// Workspace is the built workspace with up-to-date rectangles.
	Workspace *dock.Workspace

	// Layout is the renderer-ready snapshot of Workspace.
	Layout sink.Layout

	// Report lists split operations whose target handle was not found.
	Report script.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	OpCount    int
	ViewCount  int
	Depth      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		out = append(out, f)
	}
	return out, ValidateFormats(out)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a script source is given.
func (o *Options) ValidateForLoad() error {
	if o.Script == nil && o.ScriptPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "script or script path is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.PNGEngine == "" {
		o.PNGEngine = PNGEngineImaging
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.PNGEngine != PNGEngineImaging && o.PNGEngine != PNGEngineRsvg {
		return errors.New(errors.ErrCodeInvalidInput, "unknown png engine %q (must be imaging or rsvg)", o.PNGEngine)
	}
	_, err := render.ParseColor(o.Background)
	return err
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Border: dock.DefaultBorder}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect format are left out so equal outputs share a key.
func (o *Options) ArtifactKeyOpts(format, name string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.Labels = o.Labels
		k.Background = o.Background
	case FormatPNG:
		k.Scale = o.Scale
		k.Background = o.Background
		k.Inset = o.Inset
		k.Engine = o.PNGEngine
		if o.PNGEngine == PNGEngineRsvg {
			k.Labels = o.Labels
		}
	case FormatJSON:
		k.Name = name
		k.VisibleOnly = o.VisibleOnly
	case FormatDOT, FormatTree:
		k.Labels = o.Labels
	}
	return k
}
