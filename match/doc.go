// Package match implements pattern matching over a Graph: depth-first
// backtracking search over an Xfer's ordered source pattern nodes,
// binding each to a concrete Graph operator under injectivity, required
// kind, one-op constraints, source-edge consistency, two-op constraints,
// and the external-edge safety rule, in that order.
//
// Enumeration is deterministic (candidates considered in ascending
// catalog.Op.ID order at every depth), so two runs over the same (Xfer,
// Graph) pair always yield bindings in the same order — the property the
// search driver's own determinism is built on.
package match
