// Package rewrite applies a substitution to a graph: given a validated
// match binding, it constructs the destination operators, derives a child
// Graph from the parent with the matched subgraph replaced, rewires the
// boundary per the Xfer's port maps, and rejects the result if it is not
// acyclic.
package rewrite
