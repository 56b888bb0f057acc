package molecule

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/molgraph/pkg/errors"
)

// Molecule is a parsed molecular graph: atoms, bonds and the derived
// adjacency lookup. It is immutable once built.
type Molecule struct {
	Notation  string
	Atoms     []Atom
	Edges     []Edge
	Adjacency *Adjacency
}

// New assembles a Molecule and builds its adjacency. Atom IDs must equal
// their index; a mismatch is an INTERNAL_ERROR.
func New(notation string, atoms []Atom, edges []Edge) (*Molecule, error) {
	for i, a := range atoms {
		if a.ID != i {
			return nil, errors.New(errors.ErrCodeInternal, "atom at index %d has id %d", i, a.ID)
		}
	}
	adj, err := BuildAdjacency(len(atoms), edges)
	if err != nil {
		return nil, err
	}
	return &Molecule{
		Notation:  notation,
		Atoms:     atoms,
		Edges:     edges,
		Adjacency: adj,
	}, nil
}

// AtomCount returns the number of atoms including implicit hydrogens.
func (m *Molecule) AtomCount() int { return len(m.Atoms) }

// EdgeCount returns the number of bonds.
func (m *Molecule) EdgeCount() int { return len(m.Edges) }

// Atom returns the atom with the given id.
func (m *Molecule) Atom(id int) (Atom, bool) {
	if id < 0 || id >= len(m.Atoms) {
		return Atom{}, false
	}
	return m.Atoms[id], true
}

// Bond returns the edge joining a and b.
func (m *Molecule) Bond(a, b int) (Edge, bool) {
	i, ok := m.Adjacency.EdgeIndex(a, b)
	if !ok {
		return Edge{}, false
	}
	return m.Edges[i], true
}

// Neighbors returns the ids bonded to id in ascending order.
func (m *Molecule) Neighbors(id int) []int {
	return m.Adjacency.Neighbors(id)
}

// Degree returns the number of bonds incident to id.
func (m *Molecule) Degree(id int) int {
	return len(m.Adjacency.Neighbors(id))
}

// BondUnits returns the sum of bond weights incident to id.
func (m *Molecule) BondUnits(id int) int {
	total := 0
	for _, nb := range m.Adjacency.Neighbors(id) {
		e, _ := m.Bond(id, nb)
		total += e.Order.Weight()
	}
	return total
}

// HydrogenCount returns the number of implicit hydrogens bonded to id.
func (m *Molecule) HydrogenCount(id int) int {
	n := 0
	for _, nb := range m.Adjacency.Neighbors(id) {
		if m.Atoms[nb].IsHydrogen() {
			n++
		}
	}
	return n
}

// HeavyAtoms returns the atoms that were written in the notation.
func (m *Molecule) HeavyAtoms() []Atom {
	var out []Atom
	for _, a := range m.Atoms {
		if !a.IsHydrogen() {
			out = append(out, a)
		}
	}
	return out
}

// Formula returns the molecular formula in Hill order: C, then H, then the
// remaining symbols alphabetically. Without carbon, all symbols are
// alphabetical. Wildcards are not counted.
func (m *Molecule) Formula() string {
	counts := map[string]int{}
	for _, a := range m.Atoms {
		if a.Kind == KindUnspecified {
			continue
		}
		counts[displaySymbol(a.Element)]++
	}

	var order []string
	if counts["C"] > 0 {
		order = append(order, "C")
		if counts["H"] > 0 {
			order = append(order, "H")
		}
	}
	for _, sym := range slices.Sorted(maps.Keys(counts)) {
		if !slices.Contains(order, sym) {
			order = append(order, sym)
		}
	}

	var b strings.Builder
	for _, sym := range order {
		b.WriteString(sym)
		if counts[sym] > 1 {
			fmt.Fprintf(&b, "%d", counts[sym])
		}
	}
	return b.String()
}

// displaySymbol turns an uppercase table symbol into its written form ("CL" -> "Cl").
func displaySymbol(sym string) string {
	if len(sym) < 2 {
		return sym
	}
	return sym[:1] + strings.ToLower(sym[1:])
}

// Validate checks the structural invariants: contiguous ids, edge endpoints
// that reference existing atoms, valid bond orders and a symmetric adjacency
// covering every edge.
func (m *Molecule) Validate() error {
	for i, a := range m.Atoms {
		if a.ID != i {
			return errors.New(errors.ErrCodeInternal, "atom at index %d has id %d", i, a.ID)
		}
	}
	for i, e := range m.Edges {
		if e.A < 0 || e.A >= len(m.Atoms) || e.B < 0 || e.B >= len(m.Atoms) {
			return errors.New(errors.ErrCodeInternal, "edge %d (%d-%d) references an unknown atom", i, e.A, e.B)
		}
		if !e.Order.Valid() {
			return errors.New(errors.ErrCodeInternal, "edge %d has invalid order %d", i, int(e.Order))
		}
		if j, ok := m.Adjacency.EdgeIndex(e.A, e.B); !ok || j != i {
			return errors.New(errors.ErrCodeInternal, "edge %d missing from adjacency", i)
		}
	}
	if m.Adjacency.Size() != len(m.Atoms) {
		return errors.New(errors.ErrCodeInternal, "adjacency size %d, want %d", m.Adjacency.Size(), len(m.Atoms))
	}
	if !m.Adjacency.Symmetric() {
		return errors.New(errors.ErrCodeInternal, "adjacency is not symmetric")
	}
	return nil
}
