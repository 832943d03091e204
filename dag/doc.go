// Package dag implements Graph: a labeled DAG of catalog.Op nodes
// connected by tensor edges, with a deterministic content hash and a
// cached aggregate cost.
//
// Graph uses separate RWMutex locks for the node set and for
// edges/adjacency, a deterministic TopoOrder (ties broken by ascending
// Op.ID), and Clone for structural copies. It models a multi-input/multi-output operator
// DAG: edges are identified by the 4-tuple (srcOp, srcIdx, dstOp, dstIdx)
// rather than by a synthetic edge ID, and operators are shared, interned
// catalog.Op values rather than graph-owned vertex structs.
//
// A Graph is built by an external constructor via the Builder methods, or
// derived from a parent Graph by the rewrite package; once a child Graph
// has been derived, the parent is never mutated again.
package dag
