// Package pipeline runs the parse → render pipeline shared by the CLI and the
// HTTP API.
//
// Both entry points build a [Runner] with an element table, a cache and a
// logger, then call [Runner.Execute] (or the individual stages). Keeping the
// cache-key logic here means a notation parsed from the CLI is a cache hit for
// the server and vice versa, as long as they share a backend.
//
// # Usage
//
//	runner := pipeline.NewRunner(table, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Notation: "CC(=O)O",
//	    Formats:  []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Run individual stages:
//
//	m, err := runner.Parse(ctx, opts)
//	artifacts, err := runner.Render(ctx, m, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/molgraph/pkg/cache"
	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/render/nodelink"
	"github.com/matzehuels/molgraph/pkg/smiles"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultLayout is the Graphviz engine used when none is given.
const DefaultLayout = nodelink.LayoutNeato

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. It is the body of API parse requests.
type Options struct {
	Notation string         `json:"notation"`
	Parse    smiles.Options `json:"parse"`

	Formats   []string `json:"formats,omitempty"`
	Layout    string   `json:"layout,omitempty"`
	Hydrogens bool     `json:"hydrogens,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Molecule     *molecule.Molecule
	MoleculeHash string
	Artifacts    map[string][]byte
	Stats        Stats
	CacheInfo    CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	AtomCount  int
	EdgeCount  int
	ParseTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, dot, svg)", format)
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

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the notation and sets the logger default.
func (o *Options) ValidateForParse() error {
	if err := errors.ValidateNotation(o.Notation); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and validates formats and layout.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := nodelink.ValidateLayout(o.Layout); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "layout")
	}
	return nil
}

// NodelinkOptions returns the diagram options for DOT and SVG output.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{Hydrogens: o.Hydrogens, Detailed: o.Detailed}
}

// MoleculeKeyOpts returns cache key options for a parse with table.
func (o *Options) MoleculeKeyOpts(tableFingerprint string) cache.MoleculeKeyOpts {
	return cache.MoleculeKeyOpts{
		TableFingerprint:        tableFingerprint,
		KeepWildcards:           o.Parse.KeepWildcards,
		RingBondsConsumeValence: o.Parse.RingBondsConsumeValence,
		StrictValence:           o.Parse.StrictValence,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Layout:       o.Layout,
		ShowHydrogen: o.Hydrogens,
		Detailed:     o.Detailed,
	}
}
