package elements

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/molgraph/pkg/errors"
)

// Table maps uppercase element symbols to their bond capacity.
//
// A Table is immutable after construction and safe to share between
// goroutines. The zero value is an empty table; use [New] or [Default].
type Table struct {
	capacity map[string]int
}

// organicSubset is the built-in table: the elements that may appear
// outside brackets in line notation, plus hydrogen.
var organicSubset = map[string]int{
	"B":  3,
	"C":  4,
	"N":  3,
	"O":  2,
	"P":  3,
	"S":  2,
	"F":  1,
	"CL": 1,
	"BR": 1,
	"I":  1,
	"H":  1,
}

// New builds a table from symbol/capacity pairs. Symbols are normalized to
// uppercase. Empty symbols, symbols longer than two letters, non-letter
// symbols and non-positive capacities are rejected.
func New(capacities map[string]int) (*Table, error) {
	t := &Table{capacity: make(map[string]int, len(capacities))}
	for sym, c := range capacities {
		norm := strings.ToUpper(strings.TrimSpace(sym))
		if err := validSymbol(norm); err != nil {
			return nil, err
		}
		if c <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "element %s: capacity must be positive, got %d", norm, c)
		}
		if _, dup := t.capacity[norm]; dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "element %s listed twice", norm)
		}
		t.capacity[norm] = c
	}
	return t, nil
}

// Default returns a fresh copy of the organic-subset table.
func Default() *Table {
	return &Table{capacity: maps.Clone(organicSubset)}
}

func validSymbol(sym string) error {
	if sym == "" || len(sym) > 2 {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid element symbol %q", sym)
	}
	for _, r := range sym {
		if r < 'A' || r > 'Z' {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid element symbol %q", sym)
		}
	}
	return nil
}

// Capacity returns the bond capacity of symbol. The lookup is
// case-insensitive, so "c", "C", "Cl" and "CL" all resolve.
func (t *Table) Capacity(symbol string) (int, bool) {
	if t == nil {
		return 0, false
	}
	c, ok := t.capacity[strings.ToUpper(symbol)]
	return c, ok
}

// Has reports whether symbol is present.
func (t *Table) Has(symbol string) bool {
	_, ok := t.Capacity(symbol)
	return ok
}

// Len returns the number of elements.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.capacity)
}

// Symbols returns all symbols in sorted order.
func (t *Table) Symbols() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.capacity))
}

// Map returns a copy of the underlying symbol/capacity pairs.
func (t *Table) Map() map[string]int {
	if t == nil {
		return map[string]int{}
	}
	return maps.Clone(t.capacity)
}

// Fingerprint returns a stable hash of the table contents. Two tables with
// the same pairs have the same fingerprint regardless of how they were loaded.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	for _, sym := range t.Symbols() {
		fmt.Fprintf(h, "%s=%d;", sym, t.capacity[sym])
	}
	return hex.EncodeToString(h.Sum(nil))
}
