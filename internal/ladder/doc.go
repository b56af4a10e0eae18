// Package ladder implements the ghost-leg (amidakuji) board: building a
// ladder of rungs across a column/level grid and tracing the path a token
// takes from a top column down to its bottom column.
//
// This package is the foundational layer. It imports nothing internal and
// performs no I/O or logging; every other package builds on its types.
//
// Key design constraints:
//   - Disjointness: at any level, no two rungs touch the same column. The
//     generator enforces it at placement time (reject-on-conflict, no repair
//     pass) and the tracer fails closed with CorruptLadder if it is violated.
//   - Randomness only enters through the RNG passed to NewGenerator. Trace,
//     Permutation, Resolve and ID are pure functions of their inputs.
//   - Rung density is a target probability per slot, not an exact count.
//   - Top labels stay editable after generation and are never read by the
//     algorithms; they are also excluded from the ladder ID.
package ladder
