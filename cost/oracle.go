package cost

import (
	"errors"

	"github.com/graphforge/xflow/catalog"
)

// ErrMeasurementFailed surfaces an oracle's inability to measure or run a
// node. Callers treat this as fatal to whatever computation depended on
// the measurement, not as a recoverable per-candidate condition.
var ErrMeasurementFailed = errors.New("cost: measurement failed")

// ErrNilModelFn indicates a TableOracle was constructed without a model
// function to produce synthetic measurements.
var ErrNilModelFn = errors.New("cost: nil ModelFn")

// GraphView is the minimal read-only view of a dag.Graph that an Oracle
// needs to execute it end-to-end. dag.Graph satisfies this structurally
// (via TopoOrder) without cost importing the dag package, which would
// otherwise cycle back through dag's own Oracle-typed methods.
type GraphView interface {
	TopoOrder() ([]*catalog.Op, error)
}

// Oracle is the external cost-measurement boundary. Measure is idempotent
// and expected to be memoized by the implementation; Run executes a graph
// end-to-end for baseline/final reporting only — the search loop never
// calls Run, it costs via Ensure/TotalCost.
type Oracle interface {
	Measure(kind catalog.Kind, attrs catalog.Attrs) (ms float64, err error)
	Run(g GraphView) (ms float64, err error)
}

// Ensure returns op's measured runtime, invoking oracle.Measure and caching
// the result on op if it has not been measured yet. The cache lives on
// op's interned Base, so every Op sharing that Base benefits from a single
// measurement.
func Ensure(op *catalog.Op, oracle Oracle) (float64, error) {
	if ms, ok := op.Runtime(); ok {
		return ms, nil
	}
	ms, err := oracle.Measure(op.Kind, op.Attrs)
	if err != nil {
		return 0, err
	}
	op.SetRuntime(ms)

	return ms, nil
}
