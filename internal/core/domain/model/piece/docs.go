// Package piece provides the Piece aggregate and its append-only event log.
//
// A piece is one physical unit cut from an order line. Its status and current station are
// a cache of the fold of its events: every mutation appends exactly one Event and updates the
// cache in the same step, and Fold rebuilds the cache from the log for audits.
//
// Codes are deterministic: "{orderNumber}-{lineCode}-{sequence}" for activated pieces and
// "{root}-R{n}" for replacements, n being one more than the highest replacement index already
// issued for the root code.
package piece
