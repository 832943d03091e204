// Package xflow is a cost-driven graph rewrite search engine for DNN
// computation graphs: given an initial operator graph and a library of
// semantics-preserving substitutions, it explores rewrites of the graph
// looking for the cheapest equivalent form under a pluggable CostOracle.
//
// catalog defines the operator model (Kind, Attrs, interned Base, Op).
// dag holds the mutable graph itself, its builder surface, hashing, and
// cost aggregation. xfer describes substitutions as a source pattern, a
// destination pattern, and port maps between them; match finds every
// binding of a substitution's source pattern in a graph; rewrite applies
// one such binding, producing a derived graph. xferlib ships a library of
// concrete substitutions; modelzoo ships toy external graph constructors
// to exercise them. search is the best-first driver tying match, rewrite,
// and cost together under a budget and a slack-pruning policy. graphio
// exports and imports graphs as YAML. engine is the top-level facade.
package xflow
