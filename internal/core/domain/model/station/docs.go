// Package station implements the Station Registry: the administrator-configured, ordered
// set of work stations a piece passes through.
//
// The package includes:
//   - Station: a named stage with a stable identity, a stage order and an active flag
//   - Kind: production stations form the pipeline, the delivery station only stamps
//     delivered pieces
//   - Pipeline: the active production stations ordered by stage order, identifier
//     breaking ties; its head is the entry point of new and replacement pieces
//   - Registry: the whole station set with the invariants enforced on administration
//     (unique codes, no two active production stations on one stage order, at most one
//     active delivery station, reorder renumbers every production station at once)
package station
