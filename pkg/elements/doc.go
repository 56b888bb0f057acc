// Package elements provides the element table consumed by the parser: a
// mapping from uppercase element symbol to the maximum number of bond units
// an atom of that element can take part in.
//
// # Sources
//
// Tables come from three places:
//
//   - [Default]: the organic subset (B, C, N, O, P, S, F, Cl, Br, I) plus H
//   - JSON data files, either in the reference shape
//     {"C": {"possible_num_bonds": 4}} or flat {"C": 4}
//   - TOML files with an [elements] table
//
// [Load] picks the decoder from the file extension and reports every failure
// as a CONFIG_LOAD error so callers can abort before parsing anything.
//
// # Ownership
//
// There is no package-level table. Callers load or build a [Table] once and
// pass it to the parser; a Table is read-only and may be shared freely.
package elements
