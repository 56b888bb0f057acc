package smiles

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/molgraph/pkg/elements"
	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/molecule"
)

func parse(t *testing.T, notation string, opts Options) *molecule.Molecule {
	t.Helper()
	m, err := Parse(notation, elements.Default(), opts)
	require.NoError(t, err, "Parse(%q)", notation)
	require.NoError(t, m.Validate())
	return m
}

func TestParseMethane(t *testing.T) {
	m := parse(t, "C", Options{})

	require.Len(t, m.Atoms, 5)
	assert.Equal(t, molecule.Atom{ID: 0, Element: "C"}, m.Atoms[0])
	for i := 1; i <= 4; i++ {
		assert.Equal(t, molecule.Atom{ID: i, Element: "H", Kind: molecule.KindHydrogen}, m.Atoms[i])
	}

	require.Len(t, m.Edges, 4)
	for i, e := range m.Edges {
		assert.Equal(t, molecule.Edge{A: 0, B: i + 1, Order: molecule.Single}, e)
	}
}

func TestParseAmmonia(t *testing.T) {
	m := parse(t, "N", Options{})

	assert.Len(t, m.Atoms, 4)
	assert.Equal(t, "N", m.Atoms[0].Element)
	require.Len(t, m.Edges, 3)
	for _, e := range m.Edges {
		assert.Equal(t, molecule.Single, e.Order)
		assert.Equal(t, 0, e.A)
	}
}

func TestParseEthane(t *testing.T) {
	m := parse(t, "CC", Options{})

	require.Len(t, m.Atoms, 8)
	assert.Equal(t, "C", m.Atoms[0].Element)
	assert.Equal(t, "C", m.Atoms[4].Element)

	want := []molecule.Edge{
		{A: 0, B: 1, Order: molecule.Single},
		{A: 0, B: 2, Order: molecule.Single},
		{A: 0, B: 3, Order: molecule.Single},
		{A: 0, B: 4, Order: molecule.Single},
		{A: 4, B: 5, Order: molecule.Single},
		{A: 4, B: 6, Order: molecule.Single},
		{A: 4, B: 7, Order: molecule.Single},
	}
	assert.Equal(t, want, m.Edges)
	assert.Equal(t, 3, m.HydrogenCount(0))
	assert.Equal(t, 3, m.HydrogenCount(4))
}

func TestParseEthene(t *testing.T) {
	m := parse(t, "C=C", Options{})

	require.Len(t, m.Atoms, 6)
	e, ok := m.Bond(0, 3)
	require.True(t, ok)
	assert.Equal(t, molecule.Double, e.Order)
	assert.Equal(t, 2, m.HydrogenCount(0))
	assert.Equal(t, 2, m.HydrogenCount(3))
	assert.Equal(t, "C2H4", m.Formula())
}

func TestParseFormulas(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		opts     Options
		formula  string
		atoms    int
		edges    int
	}{
		{"isobutane", "CC(C)C", Options{}, "C4H10", 14, 13},
		{"acetic acid", "CC(=O)O", Options{}, "C2H4O2", 8, 7},
		{"chloromethane", "CCl", Options{}, "CH3Cl", 5, 4},
		{"bromoethane", "CCBr", Options{}, "C2H5Br", 8, 7},
		{"hydrogen cyanide", "C#N", Options{}, "CHN", 3, 2},
		{"explicit single", "C-C", Options{}, "C2H6", 8, 7},
		{"ignored stereo marks", "C/C=C/C", Options{}, "C4H8", 12, 11},
		{"empty branch", "C()C", Options{}, "C2H6", 8, 7},
		{"nested opens", "C((C)C)", Options{}, "C3H8", 11, 10},
		{"disconnected", "C.C", Options{}, "C2H8", 10, 8},
		{"cyclohexane default", "C1CCCCC1", Options{}, "C6H14", 20, 20},
		{"cyclohexane counted", "C1CCCCC1", Options{RingBondsConsumeValence: true}, "C6H12", 18, 18},
		{"escaped label", "C%10CCCCC%10", Options{RingBondsConsumeValence: true}, "C6H12", 18, 18},
		{"bond before label", "C=1CCCCC1", Options{RingBondsConsumeValence: true}, "C6H12", 18, 18},
		{"overbonded clamps", "C(C)(C)(C)(C)C", Options{}, "C6H15", 21, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.notation, elements.Default(), tt.opts)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.notation, err)
			}
			if got := m.Formula(); got != tt.formula {
				t.Errorf("Formula() = %s, want %s", got, tt.formula)
			}
			if got := m.AtomCount(); got != tt.atoms {
				t.Errorf("AtomCount() = %d, want %d", got, tt.atoms)
			}
			if got := m.EdgeCount(); got != tt.edges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.edges)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestParseAceticAcidBonds(t *testing.T) {
	m := parse(t, "CC(=O)O", Options{})

	// C0 H1 H2 H3 C4 O5 O6 H7
	require.Equal(t, "O", m.Atoms[5].Element)
	e, ok := m.Bond(4, 5)
	require.True(t, ok)
	assert.Equal(t, molecule.Double, e.Order)

	e, ok = m.Bond(4, 6)
	require.True(t, ok)
	assert.Equal(t, molecule.Single, e.Order)

	assert.Equal(t, 0, m.HydrogenCount(4))
	assert.Equal(t, 1, m.HydrogenCount(6))
}

func TestParseRingClosureEdge(t *testing.T) {
	m := parse(t, "C1CCCCC1", Options{})

	// Ring atoms at 0, 4, 7, 10, 13, 16; closure is emitted last.
	last := m.Edges[len(m.Edges)-1]
	assert.Equal(t, molecule.Edge{A: 0, B: 16, Order: molecule.Single}, last)

	// Reference behaviour: closure bonds do not reduce capacity.
	assert.Equal(t, 3, m.HydrogenCount(0))
	assert.Equal(t, 2, m.HydrogenCount(4))
	assert.Equal(t, 3, m.HydrogenCount(16))
	assert.Equal(t, 5, m.BondUnits(0))
}

func TestParseAromatic(t *testing.T) {
	m := parse(t, "c1ccccc1", Options{RingBondsConsumeValence: true})

	for _, a := range m.Atoms {
		assert.True(t, a.Aromatic, "atom %s should inherit aromaticity", a)
		if !a.IsHydrogen() {
			assert.Equal(t, "C", a.Element)
		}
	}
	assert.Len(t, m.HeavyAtoms(), 6)
}

func TestParseWildcard(t *testing.T) {
	t.Run("dropped", func(t *testing.T) {
		m := parse(t, "C*C", Options{})

		assert.Len(t, m.Atoms, 8)
		assert.Len(t, m.Edges, 6)
		assert.Equal(t, 3, m.HydrogenCount(0))
		assert.Equal(t, 3, m.HydrogenCount(4))
		_, bonded := m.Bond(0, 4)
		assert.False(t, bonded)
	})

	t.Run("kept", func(t *testing.T) {
		m := parse(t, "C*C", Options{KeepWildcards: true})

		require.Len(t, m.Atoms, 9)
		assert.Equal(t, molecule.KindUnspecified, m.Atoms[4].Kind)
		assert.Equal(t, molecule.WildcardElement, m.Atoms[4].Element)
		assert.Equal(t, []int{0, 5}, m.Neighbors(4))
		assert.Len(t, m.Edges, 8)
		assert.Equal(t, "C2H6", m.Formula())
	})

	t.Run("ring through dropped wildcard", func(t *testing.T) {
		m := parse(t, "C1CC*1", Options{})
		assert.Len(t, m.HeavyAtoms(), 3)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		opts     Options
		code     errors.Code
	}{
		{"unmatched ring digit", "C1CC", Options{}, errors.ErrCodeMalformedRingClosure},
		{"ring label used three times", "C1CC1C1", Options{}, errors.ErrCodeMalformedRingClosure},
		{"ring label before atom", "1CC1", Options{}, errors.ErrCodeMalformedRingClosure},
		{"percent without digits", "C%CC", Options{}, errors.ErrCodeMalformedRingClosure},
		{"unmatched escaped label", "C%12CC", Options{}, errors.ErrCodeMalformedRingClosure},
		{"unknown uppercase", "CX", Options{}, errors.ErrCodeUnknownElement},
		{"unknown lowercase", "Cx", Options{}, errors.ErrCodeUnknownElement},
		{"ring duplicates chain bond", "C1C1", Options{}, errors.ErrCodeConflictingBond},
		{"ring to itself", "C11", Options{}, errors.ErrCodeConflictingBond},
		{"unmatched close", "CC)C", Options{}, errors.ErrCodeMalformedBranch},
		{"unclosed open", "C(C", Options{}, errors.ErrCodeMalformedBranch},
		{"branch before atom", "(C)C", Options{}, errors.ErrCodeMalformedBranch},
		{"strict overbonded", "C(C)(C)(C)(C)C", Options{StrictValence: true}, errors.ErrCodeValenceExceeded},
		{"strict double on oxygen", "O=O=O", Options{StrictValence: true}, errors.ErrCodeValenceExceeded},
		{"trailing bond", "C=", Options{}, errors.ErrCodeInvalidInput},
		{"bond before branch", "C=(O)C", Options{}, errors.ErrCodeInvalidInput},
		{"bond before close", "C(C=)C", Options{}, errors.ErrCodeInvalidInput},
		{"bond before dot", "C=.C", Options{}, errors.ErrCodeInvalidInput},
		{"leading bond", "=C", Options{}, errors.ErrCodeInvalidInput},
		{"bond after dot", "C.=C", Options{}, errors.ErrCodeInvalidInput},
		{"two bonds", "C=#C", Options{}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.notation, elements.Default(), tt.opts)
			if m != nil {
				t.Errorf("Parse(%q) returned a molecule alongside the error", tt.notation)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse(%q) error = %v, want %s", tt.notation, err, tt.code)
			}
		})
	}
}

func TestParseDanglingBondPosition(t *testing.T) {
	_, err := Parse("CC=", elements.Default(), Options{})
	pos, ok := errors.Position(err)
	if !ok || pos != 2 {
		t.Errorf("Position() = %d, %v; want 2, true", pos, ok)
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, `"="`) {
		t.Errorf("message %q should name the bond symbol", msg)
	}
}

func TestParseErrorDetails(t *testing.T) {
	_, err := Parse("C1CC", elements.Default(), Options{})
	assert.Contains(t, errors.UserMessage(err), `"1"`)

	_, err = Parse("CCQ", elements.Default(), Options{})
	assert.Contains(t, errors.UserMessage(err), `"Q"`)
	assert.Contains(t, errors.UserMessage(err), "position 2")

	pos, ok := errors.Position(err)
	assert.True(t, ok)
	assert.Equal(t, 2, pos)

	_, err = Parse("CC1CC", elements.Default(), Options{})
	pos, ok = errors.Position(err)
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestParseAromaticNeighbourNotTwoLetter(t *testing.T) {
	tbl, err := elements.New(map[string]int{"C": 4, "N": 3, "S": 2, "H": 1, "CN": 4, "SC": 3})
	require.NoError(t, err)

	m, err := Parse("Cn1ccnc1", tbl, Options{RingBondsConsumeValence: true})
	require.NoError(t, err)
	assert.Equal(t, "C", m.Atoms[0].Element)
	assert.Equal(t, "C4H9N2", m.Formula())

	m, err = Parse("Sc1ccccc1", tbl, Options{})
	require.NoError(t, err)
	assert.Equal(t, "S", m.Atoms[0].Element)
	assert.Equal(t, "C6H14S", m.Formula())
}

func TestParseCustomTable(t *testing.T) {
	tbl, err := elements.New(map[string]int{"C": 4, "SI": 4})
	require.NoError(t, err)

	m, err := Parse("[Si]C", tbl, Options{})
	require.NoError(t, err)
	assert.Equal(t, "SI", m.Atoms[0].Element)

	_, err = Parse("CO", tbl, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownElement))
}

func TestParseIdempotent(t *testing.T) {
	tbl := elements.Default()
	for _, notation := range []string{"CC(C)(=O)N", "c1ccccc1O", "C%10CC%10Cl"} {
		a, err := Parse(notation, tbl, Options{})
		require.NoError(t, err)
		b, err := Parse(notation, tbl, Options{})
		require.NoError(t, err)
		assert.Equal(t, a.Atoms, b.Atoms)
		assert.Equal(t, a.Edges, b.Edges)
	}
}

func TestParseInvariants(t *testing.T) {
	inputs := []string{
		"C", "CC", "C=C", "C#C", "CC(C)(C)C", "OC(=O)C(N)C", "c1ccccc1",
		"C1CC2CCC1C2", "ClC(Cl)(Cl)Cl", "C*C(*)C", "N#CC.O", "C%10CCC%10",
	}
	tbl := elements.Default()

	for _, notation := range inputs {
		t.Run(notation, func(t *testing.T) {
			m, err := Parse(notation, tbl, Options{})
			require.NoError(t, err)
			require.NoError(t, m.Validate())

			// atoms = written heavy atoms + inferred hydrogens
			tokens, err := Scan(notation, tbl)
			require.NoError(t, err)
			written := 0
			for _, tok := range tokens {
				if tok.Kind == TokenAtom {
					written++
				}
			}
			hydrogens := 0
			for _, a := range m.Atoms {
				if a.IsHydrogen() {
					hydrogens++
				}
			}
			assert.Equal(t, written+hydrogens, m.AtomCount())

			// hydrogens follow their parent directly
			for _, a := range m.Atoms {
				if !a.IsHydrogen() {
					continue
				}
				nbs := m.Neighbors(a.ID)
				require.Len(t, nbs, 1)
				assert.Less(t, nbs[0], a.ID)
			}
		})
	}
}

func TestParserReuse(t *testing.T) {
	p := NewParser(elements.Default(), Options{RingBondsConsumeValence: true})

	m, err := p.Parse("C1CC1")
	require.NoError(t, err)
	assert.Equal(t, "C3H6", m.Formula())

	_, err = Parse("C", nil, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
}

func TestParseLongChainMemory(t *testing.T) {
	notation := strings.Repeat("C", errors.MaxNotationLength)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	m, err := Parse(notation, elements.Default(), Options{})
	runtime.ReadMemStats(&after)
	require.NoError(t, err)

	assert.Equal(t, 3*errors.MaxNotationLength+2, m.AtomCount())
	const budget = 64 << 20
	if used := after.TotalAlloc - before.TotalAlloc; used > budget {
		t.Errorf("parsing %d atoms allocated %d MiB, want at most %d MiB", m.AtomCount(), used>>20, budget>>20)
	}
}
