// Package compiler turns CUE ladder definitions into ladder.Ladder values.
//
// A ladder file declares a top-level `ladder` struct:
//
//	ladder: {
//		columns: 3
//		levels:  2
//		rungs: [
//			{level: 0, leftColumn: 0},
//			{level: 1, leftColumn: 1},
//		]
//		bottom: ["あたり", "はずれ", "はずれ"]
//	}
//
// The struct is unified with the embedded #Ladder schema (types, lower
// bounds, no unknown fields) and then checked with ladder.Validate, so a
// compiled ladder always satisfies the disjointness invariant. Errors carry
// the CUE source position of the offending value where one is known.
package compiler
