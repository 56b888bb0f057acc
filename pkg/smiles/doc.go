// Package smiles parses linear chemical line notation into a molecular graph.
//
// The supported grammar is the bracket-free subset:
//
//   - Element symbols present in the element table, case-insensitive.
//     Lowercase marks the atom aromatic. Outside brackets only Cl and Br
//     are read as two-letter symbols, so "Cn" is carbon followed by aromatic
//     nitrogen. Inside brackets any two-letter symbol in the table is ("[Si]").
//   - Bonds: '-' single, '=' double, '#' triple. No symbol means single. A
//     bond symbol must sit between two atoms or directly before a ring label.
//   - Branches: '(' ... ')', arbitrarily nested, attached to the atom before
//     the opening parenthesis.
//   - Ring closures: a digit 0-9, or '%' followed by a digit run. Each label
//     must occur exactly twice.
//   - '*' wildcard: consumes a bond on its neighbours but produces no atom
//     unless [Options.KeepWildcards] is set.
//   - '.' separates disconnected fragments.
//
// Everything else (brackets, charges, stereo marks) is skipped.
//
// # Pipeline
//
// [Parse] runs in three steps:
//
//  1. [Scan] classifies each position of the input.
//  2. A structural pre-pass records every atom's predecessor and bond order,
//     so no bracket run is ever rescanned.
//  3. A single pass over the tokens assigns ids, emits bonds to already-seen
//     predecessors, appends hydrogens for the remaining capacity, and records
//     ring labels. Ring bonds are emitted at the end, then the adjacency is
//     built.
//
// Hydrogens get the ids directly after their heavy atom:
//
//	m, _ := smiles.Parse("CC", elements.Default(), smiles.Options{})
//	// C0 H1 H2 H3 C4 H5 H6 H7
//
// # Known limitations
//
// Ring-closure bonds are always single and, by default, are not subtracted
// from capacity, so ring atoms get one hydrogen too many. Set
// [Options.RingBondsConsumeValence] to count them. Hydrogens inherit the
// aromatic flag of their parent.
package smiles
