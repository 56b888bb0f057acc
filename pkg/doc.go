// Package pkg provides the libraries behind molgraph.
//
// # Overview
//
// molgraph turns linear chemical line notation (a bracket-free SMILES subset)
// into an explicit molecular graph. The pkg directory is organized as:
//
//  1. [smiles] - Scanner and single-pass parser
//  2. [molecule] - Atoms, bonds and the symmetric adjacency
//  3. [elements] - Element tables (built-in, JSON, TOML)
//  4. [pipeline] - Cached parse and render orchestration
//  5. [cache], [storage] - File/Redis caching and the MongoDB molecule store
//  6. [io], [render/nodelink] - JSON documents and Graphviz output
//  7. [config], [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// The typical data flow:
//
//	notation + element table
//	         ↓
//	    [smiles] package (scan, resolve neighbours, fill hydrogens)
//	         ↓
//	    [molecule] package (edges + adjacency, conflicting-bond check)
//	         ↓
//	    [io] / [render/nodelink] (JSON, DOT, SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/molgraph/pkg/elements"
//	    "github.com/matzehuels/molgraph/pkg/smiles"
//	)
//
//	m, err := smiles.Parse("CC(=O)O", elements.Default(), smiles.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.Formula()) // C2H4O2
//
// With caching and rendering:
//
//	runner := pipeline.NewRunner(nil, cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Notation: "c1ccccc1",
//	    Formats:  []string{pipeline.FormatSVG},
//	})
//
// [smiles]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/smiles
// [molecule]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/molecule
// [elements]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/elements
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/storage
// [io]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/render/nodelink
// [config]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/molgraph/pkg/buildinfo
package pkg
