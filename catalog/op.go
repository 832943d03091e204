package catalog

// Op is a single node of the DAG: a unique identity (ID, monotonically
// assigned and used only for identity comparisons, never semantics) plus
// the shared, interned Base that carries its kind, attributes, arity, and
// measured runtime.
//
// Two Ops with equal Base pointers compute the same thing and share a
// CostOracle measurement; they remain distinct DAG nodes because each has
// its own ID and its own edges in whatever Graph contains it. Param and
// Runtime/SetRuntime are promoted from Base by embedding.
type Op struct {
	ID uint64
	*Base
}
