// Package xfer implements Substitution (Xfer): a declarative pattern — a
// source subgraph with constraints, a destination subgraph with
// constructors, and input/output port mappings describing how the
// destination reconnects to whatever the source subgraph was attached to.
//
// An Xfer is authored once, through Builder, and is immutable and shared
// by reference across the whole search afterward. Builder's five-step
// authoring contract — declare SrcOps, declare source edges, declare
// two-op constraints, declare DstOps, declare destination edges and port
// maps — is expressed as a sequence of plain method calls accumulating
// state until Build validates and freezes it into an Xfer.
package xfer
