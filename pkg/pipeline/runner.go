package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/molgraph/pkg/cache"
	"github.com/matzehuels/molgraph/pkg/elements"
	molio "github.com/matzehuels/molgraph/pkg/io"
	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state. Multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Table  *elements.Table
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil table uses the built-in element table, a
// nil cache disables caching and a nil keyer uses the default keyer.
func NewRunner(table *elements.Table, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if table == nil {
		table = elements.Default()
	}
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
		Table:  table,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLMolecule,
	}
}

// Execute parses the notation and renders every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	parseStart := time.Now()
	m, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Molecule = m
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.AtomCount = m.AtomCount()
	result.Stats.EdgeCount = m.EdgeCount()
	result.CacheInfo.ParseHit = parseHit

	if data, err := molio.Marshal(m); err == nil {
		result.MoleculeHash = cache.Hash(data)
	}

	opts.Logger.Debug("parsed notation",
		"atoms", m.AtomCount(),
		"edges", m.EdgeCount(),
		"cached", parseHit,
		"duration", result.Stats.ParseTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses opts.Notation, consulting the cache first, and
// reports whether the result was a cache hit. Parse errors are never cached.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*molecule.Molecule, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.MoleculeKey(opts.Notation, opts.MoleculeKeyOpts(r.Table.Fingerprint()))

	if !opts.Refresh {
		if m, ok := r.cachedMolecule(ctx, key, opts.Logger); ok {
			return m, true, nil
		}
	}

	m, err := Parse(ctx, r.Table, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := molio.Marshal(m); err == nil {
		r.store(ctx, key, "molecule", data, opts.Logger)
	}
	return m, false, nil
}

// Parse is ParseWithCacheInfo without the hit flag.
func (r *Runner) Parse(ctx context.Context, opts Options) (*molecule.Molecule, error) {
	m, _, err := r.ParseWithCacheInfo(ctx, opts)
	return m, err
}

// RenderWithCacheInfo renders m in every requested format. The hit flag is
// true only when all formats came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *molecule.Molecule, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := molio.Marshal(m)
	if err != nil {
		return nil, false, fmt.Errorf("serialize molecule for cache key: %w", err)
	}
	hash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			cached, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = cached
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, m, opts)
	if err != nil {
		return nil, false, err
	}
	for format, out := range rendered {
		r.store(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)), "artifact", out, opts.Logger)
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, m *molecule.Molecule, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cachedMolecule returns the cached parse for key. Backend errors and
// undecodable entries count as misses.
func (r *Runner) cachedMolecule(ctx context.Context, key string, logger *log.Logger) (*molecule.Molecule, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "molecule")
		return nil, false
	}
	m, err := molio.Unmarshal(data)
	if err != nil {
		logger.Debug("discarding undecodable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "molecule")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "molecule")
	return m, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
