package smiles

import (
	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/molecule"
)

// ringTracker pairs up atoms that share a closure label.
type ringTracker struct {
	labels []string         // first-seen order, for deterministic output
	atoms  map[string][]int // label -> atom ids; noPos for a dropped wildcard
	first  map[string]int   // label -> position of its first occurrence
}

func newRingTracker() *ringTracker {
	return &ringTracker{
		atoms: make(map[string][]int),
		first: make(map[string]int),
	}
}

func (r *ringTracker) add(label string, atomID, pos int) {
	if _, seen := r.atoms[label]; !seen {
		r.labels = append(r.labels, label)
		r.first[label] = pos
	}
	r.atoms[label] = append(r.atoms[label], atomID)
}

// close emits one single bond per label. Every label must have collected
// exactly two atoms. A pair involving a dropped wildcard closes silently.
func (r *ringTracker) close() ([]molecule.Edge, error) {
	edges := make([]molecule.Edge, 0, len(r.labels))
	for _, label := range r.labels {
		ids := r.atoms[label]
		if len(ids) != 2 {
			return nil, errors.New(errors.ErrCodeMalformedRingClosure,
				"ring label %q (first at position %d) used %d time(s), want 2", label, r.first[label], len(ids)).At(r.first[label])
		}
		if ids[0] == noPos || ids[1] == noPos {
			continue
		}
		edges = append(edges, molecule.Edge{A: ids[0], B: ids[1], Order: molecule.Single})
	}
	return edges, nil
}
