// Package io provides JSON import and export for parsed molecules.
//
// # JSON Format
//
//	{
//	  "notation": "C=O",
//	  "formula": "CH2O",
//	  "atoms": [
//	    {"id": 0, "element": "C", "aromatic": false, "charge": 0, "kind": "heavy"},
//	    {"id": 1, "element": "H", "aromatic": false, "charge": 0, "kind": "hydrogen"},
//	    ...
//	  ],
//	  "edges": [
//	    {"a": 0, "b": 1, "order": "single"},
//	    {"a": 0, "b": 3, "order": "double"}
//	  ]
//	}
//
// Atom kinds are "heavy", "hydrogen" and "unspecified" (a kept wildcard).
// Bond orders are "single", "double" and "triple". The formula is written for
// readers and ignored on import.
//
// # Import
//
// [ReadJSON] and [ImportJSON] rebuild the adjacency from the edge list, so an
// imported document goes through the same CONFLICTING_BOND check as a fresh
// parse. Malformed documents fail with INVALID_FORMAT.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write indented JSON. [Marshal] and [Unmarshal]
// are the compact forms used for cache entries.
package io
