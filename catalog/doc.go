// Package catalog defines the closed set of DNN operator kinds, their
// queryable parameters, and the process-wide interning table (Model) that
// keeps one canonical *Base per distinct (kind, attrs, arity) key.
//
// Operator kinds are a closed tagged union (Kind + a single Attrs record),
// not an open hierarchy: Param dispatches on Kind and returns (0, false)
// for any parameter a kind does not carry. Two calls to Model.GetOrCreate
// with an equal key return distinct *Op values (each with its own ID) that
// embed the identical *Base pointer, so a CostOracle measurement performed
// once is shared by every operator with that key.
package catalog
