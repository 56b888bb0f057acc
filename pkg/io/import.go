package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/molecule"
)

// FromDocument rebuilds a molecule, including its adjacency, from doc.
//
// Atom ids must be contiguous from 0 in array order. Unknown kinds or orders
// are INVALID_FORMAT; duplicate bonds are CONFLICTING_BOND.
func FromDocument(doc Document) (*molecule.Molecule, error) {
	atoms := make([]molecule.Atom, len(doc.Atoms))
	for i, a := range doc.Atoms {
		if a.ID != i {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "atom %d: id %d out of sequence", i, a.ID)
		}
		kind, err := molecule.ParseAtomKind(a.Kind)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "atom %d", i)
		}
		atoms[i] = molecule.Atom{
			ID:       a.ID,
			Element:  a.Element,
			Aromatic: a.Aromatic,
			Charge:   a.Charge,
			Kind:     kind,
		}
	}

	edges := make([]molecule.Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		order, err := molecule.ParseBondOrder(e.Order)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %d-%d", e.A, e.B)
		}
		if e.A < 0 || e.A >= len(atoms) || e.B < 0 || e.B >= len(atoms) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "edge %d-%d references an unknown atom", e.A, e.B)
		}
		edges[i] = molecule.Edge{A: e.A, B: e.B, Order: order}
	}

	return molecule.New(doc.Notation, atoms, edges)
}

// Unmarshal decodes a molecule produced by [Marshal] or [WriteJSON].
func Unmarshal(data []byte) (*molecule.Molecule, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ReadJSON decodes a JSON molecule from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*molecule.Molecule, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return FromDocument(doc)
}

// ImportJSON reads a JSON molecule file at path.
func ImportJSON(path string) (*molecule.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
