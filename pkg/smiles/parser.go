package smiles

import (
	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/molecule"
)

// ElementTable is the lookup the parser needs from its element data.
// Symbols are passed uppercase. [elements.Table] implements it.
type ElementTable interface {
	Capacity(symbol string) (int, bool)
}

// Options adjusts parser behaviour. The zero value gives the reference
// behaviour: wildcards dropped, ring bonds not counted against capacity,
// over-bonded atoms clamped to zero hydrogens.
type Options struct {
	// KeepWildcards emits an unspecified atom for every '*' instead of
	// dropping it. The placeholder is bonded like any atom but receives no
	// hydrogens.
	KeepWildcards bool `json:"keep_wildcards,omitempty" yaml:"keep_wildcards"`

	// RingBondsConsumeValence subtracts ring-closure bonds from an atom's
	// capacity before hydrogens are added. Without it, ring atoms carry one
	// extra hydrogen per closure.
	RingBondsConsumeValence bool `json:"ring_bonds_consume_valence,omitempty" yaml:"ring_bonds_consume_valence"`

	// StrictValence fails with VALENCE_EXCEEDED when an atom has more bond
	// units than its capacity, instead of giving it zero hydrogens.
	StrictValence bool `json:"strict_valence,omitempty" yaml:"strict_valence"`
}

// Parser converts notation strings into molecules using a fixed element
// table and options. A Parser holds no per-parse state and is safe for
// concurrent use as long as the table is not mutated.
type Parser struct {
	table ElementTable
	opts  Options
}

// NewParser returns a parser bound to table.
func NewParser(table ElementTable, opts Options) *Parser {
	return &Parser{table: table, opts: opts}
}

// Parse converts notation into a molecule.
func (p *Parser) Parse(notation string) (*molecule.Molecule, error) {
	return Parse(notation, p.table, p.opts)
}

// Parse converts notation into a molecule using table for bond capacities.
//
// The parse either succeeds completely or returns an error carrying one of
// the codes UNKNOWN_ELEMENT, MALFORMED_RING_CLOSURE, MALFORMED_BRANCH,
// CONFLICTING_BOND or VALENCE_EXCEEDED; no partial graph is returned.
func Parse(notation string, table ElementTable, opts Options) (*molecule.Molecule, error) {
	if table == nil {
		return nil, errors.New(errors.ErrCodeInternal, "nil element table")
	}
	tokens, err := Scan(notation, table)
	if err != nil {
		return nil, err
	}
	sk, err := resolve(len(notation), tokens)
	if err != nil {
		return nil, err
	}

	st := &state{
		table:   table,
		opts:    opts,
		sk:      sk,
		posAtom: make([]int, len(notation)),
		rings:   newRingTracker(),
	}
	for i := range st.posAtom {
		st.posAtom[i] = noPos
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenAtom:
			if err := st.addAtom(tok); err != nil {
				return nil, err
			}
		case TokenWildcard:
			if opts.KeepWildcards {
				st.addWildcard(tok)
			}
		case TokenRingLabel:
			st.rings.add(tok.Label, st.posAtom[sk.anchor[tok.Pos]], tok.Pos)
		}
	}

	closures, err := st.rings.close()
	if err != nil {
		return nil, err
	}
	st.edges = append(st.edges, closures...)

	return molecule.New(notation, st.atoms, st.edges)
}

// state is the in-progress parse.
type state struct {
	table ElementTable
	opts  Options
	sk    *skeleton

	posAtom []int // input position -> atom id, noPos for non-atoms
	atoms   []molecule.Atom
	edges   []molecule.Edge
	rings   *ringTracker
}

// addAtom creates the heavy atom for tok, bonds it to its already-seen
// predecessor and fills its remaining capacity with hydrogens.
func (st *state) addAtom(tok Token) error {
	capacity, ok := st.table.Capacity(tok.Symbol)
	if !ok {
		return errors.New(errors.ErrCodeUnknownElement, "unknown element %q at position %d", tok.Symbol, tok.Pos).At(tok.Pos)
	}

	id := st.place(molecule.Atom{Element: tok.Symbol, Aromatic: tok.Aromatic, Kind: molecule.KindHeavy}, tok.Pos)

	used := st.linkParent(id, tok.Pos) + st.sk.childUnits[tok.Pos]
	if st.opts.RingBondsConsumeValence {
		used += st.sk.ringCount[tok.Pos]
	}

	remaining := capacity - used
	if remaining < 0 {
		if st.opts.StrictValence {
			return errors.New(errors.ErrCodeValenceExceeded,
				"%s at position %d has %d bond units, capacity %d", tok.Symbol, tok.Pos, used, capacity).At(tok.Pos)
		}
		remaining = 0
	}

	for range remaining {
		h := st.place(molecule.Atom{Element: "H", Aromatic: tok.Aromatic, Kind: molecule.KindHydrogen}, noPos)
		st.edges = append(st.edges, molecule.Edge{A: id, B: h, Order: molecule.Single})
	}
	return nil
}

func (st *state) addWildcard(tok Token) {
	id := st.place(molecule.Atom{Element: molecule.WildcardElement, Kind: molecule.KindUnspecified}, tok.Pos)
	st.linkParent(id, tok.Pos)
}

// place appends a with the next id and records it at pos.
func (st *state) place(a molecule.Atom, pos int) int {
	a.ID = len(st.atoms)
	st.atoms = append(st.atoms, a)
	if pos != noPos {
		st.posAtom[pos] = a.ID
	}
	return a.ID
}

// linkParent emits the bond from the atom at pos to its predecessor and
// returns the capacity it consumes. A predecessor without an id (a dropped
// wildcard) still consumes capacity but yields no edge.
func (st *state) linkParent(id, pos int) int {
	parent := st.sk.parent[pos]
	if parent == noPos {
		return 0
	}
	order := st.sk.order[pos]
	if pid := st.posAtom[parent]; pid != noPos {
		st.edges = append(st.edges, molecule.Edge{A: pid, B: id, Order: order})
	}
	return order.Weight()
}
