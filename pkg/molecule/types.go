package molecule

import (
	"fmt"
	"strings"
)

// BondOrder is the multiplicity of a bond.
type BondOrder int

const (
	Single BondOrder = 1
	Double BondOrder = 2
	Triple BondOrder = 3
)

// Weight returns the number of capacity units the bond consumes on each
// endpoint. It equals the numeric order.
func (o BondOrder) Weight() int { return int(o) }

// Valid reports whether o is one of Single, Double or Triple.
func (o BondOrder) Valid() bool { return o >= Single && o <= Triple }

// String returns the bond name.
func (o BondOrder) String() string {
	switch o {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	default:
		return fmt.Sprintf("BondOrder(%d)", int(o))
	}
}

// Symbol returns the notation character for the bond.
func (o BondOrder) Symbol() string {
	switch o {
	case Double:
		return "="
	case Triple:
		return "#"
	default:
		return "-"
	}
}

// ParseBondOrder converts a bond name back to an order.
func ParseBondOrder(s string) (BondOrder, error) {
	switch s {
	case "single":
		return Single, nil
	case "double":
		return Double, nil
	case "triple":
		return Triple, nil
	default:
		return 0, fmt.Errorf("unknown bond order %q", s)
	}
}

// AtomKind distinguishes written atoms from atoms the parser synthesized.
type AtomKind int

const (
	// KindHeavy is an atom written explicitly in the notation.
	KindHeavy AtomKind = iota
	// KindHydrogen is an implicit hydrogen added to saturate a heavy atom.
	KindHydrogen
	// KindUnspecified is a wildcard placeholder. It carries no element
	// semantics and never receives hydrogens.
	KindUnspecified
)

var kindNames = map[AtomKind]string{
	KindHeavy:       "heavy",
	KindHydrogen:    "hydrogen",
	KindUnspecified: "unspecified",
}

// String returns the kind name.
func (k AtomKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AtomKind(%d)", int(k))
}

// ParseAtomKind converts a kind name back to an AtomKind.
func ParseAtomKind(s string) (AtomKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown atom kind %q", s)
}

// WildcardElement is the element string carried by unspecified atoms.
const WildcardElement = "*"

// Atom is a node of the molecular graph.
//
// IDs are contiguous from 0 in discovery order. Implicit hydrogens get the
// IDs immediately following the heavy atom that generated them.
type Atom struct {
	ID       int
	Element  string // uppercase symbol, "H" for implicit hydrogens
	Aromatic bool   // symbol was written in lowercase (inherited by hydrogens)
	Charge   int    // always 0; bracket charges are not parsed
	Kind     AtomKind
}

// IsHydrogen reports whether the atom is an implicit hydrogen.
func (a Atom) IsHydrogen() bool { return a.Kind == KindHydrogen }

// String returns a compact representation such as "C0" or "c3".
func (a Atom) String() string {
	sym := a.Element
	if a.Aromatic && a.Kind != KindHydrogen {
		sym = strings.ToLower(sym)
	}
	return fmt.Sprintf("%s%d", sym, a.ID)
}

// Edge is an undirected bond between atoms A and B.
type Edge struct {
	A     int
	B     int
	Order BondOrder
}

// Other returns the endpoint opposite to id, or -1 if id is not an endpoint.
func (e Edge) Other(id int) int {
	switch id {
	case e.A:
		return e.B
	case e.B:
		return e.A
	default:
		return -1
	}
}

// Touches reports whether id is an endpoint of e.
func (e Edge) Touches(id int) bool { return e.A == id || e.B == id }
