package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treekit/lineage/pkg/cache"
	"github.com/treekit/lineage/pkg/layout"
	"github.com/treekit/lineage/pkg/member"
	"github.com/treekit/lineage/pkg/observability"
	"github.com/treekit/lineage/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Input)
	c, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.Input, countOrZero(c), time.Since(loadStart), err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Members = c
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.MemberCount = c.Len()
	result.CacheInfo.LoadHit = loadHit

	// Compute snapshot hash for cache keys and API responses
	if data, err := member.MarshalMembers(c); err == nil {
		result.MembersHash = cache.Hash(data)
	}

	// Advisory lint findings (never fatal - the layout tolerates bad refs)
	result.Findings = member.Lint(c)

	r.Logger.Info("loaded members",
		"count", c.Len(),
		"findings", len(result.Findings),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Mode, c.Len())
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, c, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Mode, time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"mode", l.Mode,
		"nodes", len(l.Nodes),
		"edges", len(l.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads members with caching and returns cache hit info.
//
// Inline members bypass the cache entirely. File inputs are cached keyed by
// the raw file content, so repeated runs against an unchanged file skip the
// normalization pass.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*member.Collection, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if opts.Members != nil {
		return member.NewCollection(opts.Members), false, nil
	}

	raw, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, false, fmt.Errorf("read members file: %w", err)
	}
	cacheKey := r.Keyer.MembersKey(string(raw))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if c, err := member.UnmarshalMembers(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "members")
				return c, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "members")
	}

	c, err := member.UnmarshalMembers(raw)
	if err != nil {
		return nil, false, fmt.Errorf("parse members: %w", err)
	}

	// Cache the normalized snapshot
	if data, err := member.MarshalMembers(c); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLMembers)
		observability.Cache().OnCacheSet(ctx, "members", len(data))
	}

	return c, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*member.Collection, error) {
	c, _, err := r.LoadWithCacheInfo(ctx, opts)
	return c, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, c *member.Collection, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	data, _ := member.MarshalMembers(c)
	membersHash := cache.Hash(data)
	cacheKey := r.Keyer.LayoutKey(membersHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := layout.UnmarshalLayout(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	var l layout.Layout
	switch opts.Mode {
	case layout.ModeGrid:
		l = layout.ComputeGrid(c, opts.LayoutConfig())
	default:
		l = layout.Compute(c, opts.LayoutConfig())
	}

	// Cache the result
	if data, err := layout.MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, c *member.Collection, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, c, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := r.renderFormats(l, layoutData, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// renderFormats produces every requested format. The DOT string is emitted
// once and shared by the Graphviz-backed formats.
func (r *Runner) renderFormats(l layout.Layout, layoutJSON []byte, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	dotFor := func() string {
		if dot == "" {
			dot = render.ToDOT(l, render.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			artifacts[format] = layoutJSON
		case FormatDOT:
			artifacts[format] = []byte(dotFor())
		case FormatSVG:
			svg, err := render.RenderSVG(dotFor())
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg
		case FormatPNG:
			png, err := render.RenderPNG(dotFor(), DefaultPNGScale)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = png
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countOrZero(c *member.Collection) int {
	if c == nil {
		return 0
	}
	return c.Len()
}
