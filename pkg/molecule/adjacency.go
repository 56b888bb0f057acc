package molecule

import (
	"slices"

	"github.com/matzehuels/molgraph/pkg/errors"
)

// Adjacency is a symmetric atom-by-atom lookup of edges.
//
// Entry (a, b) holds the index of the edge joining a and b in the edge list
// it was built from. Each atom keeps its own neighbour map, so memory grows
// with the edge count rather than the square of the atom count.
type Adjacency struct {
	rows []map[int]int
}

// BuildAdjacency assembles the lookup for n atoms from edges.
//
// Both (A, B) and (B, A) are assigned for every edge. Assigning an entry that
// is already populated fails with CONFLICTING_BOND naming both atoms; this is
// how duplicate bonds and self-bonds from ring closures surface. An endpoint
// outside [0, n) is an INTERNAL_ERROR.
func BuildAdjacency(n int, edges []Edge) (*Adjacency, error) {
	adj := &Adjacency{rows: make([]map[int]int, n)}
	for i, e := range edges {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			return nil, errors.New(errors.ErrCodeInternal, "edge %d (%d-%d) references an unknown atom", i, e.A, e.B)
		}
		if e.A == e.B {
			return nil, errors.New(errors.ErrCodeConflictingBond, "atom %d is bonded to itself", e.A)
		}
		if err := adj.assign(e.A, e.B, i); err != nil {
			return nil, err
		}
		if err := adj.assign(e.B, e.A, i); err != nil {
			return nil, err
		}
	}
	return adj, nil
}

func (adj *Adjacency) assign(a, b, edge int) error {
	row := adj.rows[a]
	if row == nil {
		row = make(map[int]int, 4)
		adj.rows[a] = row
	}
	if _, taken := row[b]; taken {
		return errors.New(errors.ErrCodeConflictingBond, "atoms %d and %d are already bonded", a, b)
	}
	row[b] = edge
	return nil
}

// Size returns the number of atoms the lookup was built for.
func (adj *Adjacency) Size() int { return len(adj.rows) }

// EdgeIndex returns the index of the edge joining a and b.
func (adj *Adjacency) EdgeIndex(a, b int) (int, bool) {
	if a < 0 || a >= len(adj.rows) {
		return 0, false
	}
	idx, ok := adj.rows[a][b]
	return idx, ok
}

// Neighbors returns the atoms bonded to a in ascending id order.
func (adj *Adjacency) Neighbors(a int) []int {
	if a < 0 || a >= len(adj.rows) || len(adj.rows[a]) == 0 {
		return nil
	}
	out := make([]int, 0, len(adj.rows[a]))
	for b := range adj.rows[a] {
		out = append(out, b)
	}
	slices.Sort(out)
	return out
}

// Symmetric reports whether every entry (a, b) has a mirror (b, a)
// referencing the same edge.
func (adj *Adjacency) Symmetric() bool {
	for a, row := range adj.rows {
		for b, idx := range row {
			if b < 0 || b >= len(adj.rows) {
				return false
			}
			if mirror, ok := adj.rows[b][a]; !ok || mirror != idx {
				return false
			}
		}
	}
	return true
}
