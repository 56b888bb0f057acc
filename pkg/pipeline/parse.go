package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/observability"
	"github.com/matzehuels/molgraph/pkg/smiles"
)

// Parse converts opts.Notation into a molecule without touching any cache.
func Parse(ctx context.Context, table smiles.ElementTable, opts Options) (*molecule.Molecule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Notation)
	start := time.Now()

	m, err := smiles.Parse(opts.Notation, table, opts.Parse)

	atoms := 0
	if m != nil {
		atoms = m.AtomCount()
	}
	hooks.OnParseComplete(ctx, opts.Notation, atoms, time.Since(start), err)
	return m, err
}
