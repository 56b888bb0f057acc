// Package molecule defines the molecular graph produced by the parser.
//
// A [Molecule] holds an ordered atom list, an undirected edge list and an
// [Adjacency] lookup derived from them. Atoms are numbered contiguously from
// zero; implicit hydrogens follow the heavy atom that generated them, so
// "CC" yields C0 H1 H2 H3 C4 H5 H6 H7.
//
// # Invariants
//
//   - Atom ids equal their index in Atoms
//   - Every edge endpoint references an existing atom
//   - The adjacency is symmetric: (a, b) and (b, a) reference the same edge
//   - No atom pair carries more than one edge
//
// [BuildAdjacency] enforces the last two; a second edge for an occupied cell
// fails with CONFLICTING_BOND rather than overwriting the first.
package molecule
