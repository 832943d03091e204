// Package cost defines the CostOracle boundary and ships one reference
// implementation, TableOracle, used by tests and by engine's default
// wiring.
//
// Real kernel-measurement is deliberately out of scope: actually running
// an operator on hardware to time it is a different concern from search.
// TableOracle exists only so this module is runnable and testable without
// hardware kernels, using the same get-or-create-and-memoize interning
// idiom as catalog.Model.
package cost
