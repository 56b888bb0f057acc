package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/molgraph/pkg/molecule"
)

// Document is the JSON form of a molecule.
type Document struct {
	Notation string     `json:"notation"`
	Formula  string     `json:"formula,omitempty"`
	Atoms    []AtomJSON `json:"atoms"`
	Edges    []EdgeJSON `json:"edges"`
}

type AtomJSON struct {
	ID       int    `json:"id"`
	Element  string `json:"element"`
	Aromatic bool   `json:"aromatic"`
	Charge   int    `json:"charge"`
	Kind     string `json:"kind"`
}

type EdgeJSON struct {
	A     int    `json:"a"`
	B     int    `json:"b"`
	Order string `json:"order"`
}

// ToDocument converts m into its JSON form.
func ToDocument(m *molecule.Molecule) Document {
	doc := Document{
		Notation: m.Notation,
		Formula:  m.Formula(),
		Atoms:    make([]AtomJSON, len(m.Atoms)),
		Edges:    make([]EdgeJSON, len(m.Edges)),
	}
	for i, a := range m.Atoms {
		doc.Atoms[i] = AtomJSON{
			ID:       a.ID,
			Element:  a.Element,
			Aromatic: a.Aromatic,
			Charge:   a.Charge,
			Kind:     a.Kind.String(),
		}
	}
	for i, e := range m.Edges {
		doc.Edges[i] = EdgeJSON{A: e.A, B: e.B, Order: e.Order.String()}
	}
	return doc
}

// Marshal encodes m as compact JSON.
func Marshal(m *molecule.Molecule) ([]byte, error) {
	return json.Marshal(ToDocument(m))
}

// WriteJSON encodes m as indented JSON and writes it to w.
func WriteJSON(m *molecule.Molecule, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(m)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes m to a JSON file at path.
func ExportJSON(m *molecule.Molecule, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}
