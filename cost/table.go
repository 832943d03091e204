package cost

import (
	"fmt"
	"sync"

	"github.com/graphforge/xflow/catalog"
)

// ModelFn assigns a synthetic runtime to a (kind, attrs) key. TableOracle
// calls it at most once per distinct key and memoizes the result, the way
// a real kernel-measurement oracle would memoize a hardware benchmark.
type ModelFn func(kind catalog.Kind, attrs catalog.Attrs) float64

// TableOracle is an in-process reference CostOracle: it memoizes synthetic
// measurements from a ModelFn, keyed by the kind and every Attrs field (as
// catalog.Model's intern key is, minus the arity, which Measure does not
// receive), so repeated Measure calls on operators that share a (kind,
// attrs) key never re-invoke the model function.
type TableOracle struct {
	model ModelFn

	mu    sync.Mutex
	cache map[string]float64
}

// NewTableOracle returns a TableOracle driven by fn. A nil fn is rejected:
// a CostOracle with no way to produce a measurement cannot satisfy the
// interface's contract.
func NewTableOracle(fn ModelFn) (*TableOracle, error) {
	if fn == nil {
		return nil, fmt.Errorf("cost: NewTableOracle: %w", ErrNilModelFn)
	}
	return &TableOracle{model: fn, cache: make(map[string]float64)}, nil
}

// Measure implements Oracle.
func (t *TableOracle) Measure(kind catalog.Kind, attrs catalog.Attrs) (float64, error) {
	k := cacheKey(kind, attrs)

	t.mu.Lock()
	defer t.mu.Unlock()
	if ms, ok := t.cache[k]; ok {
		return ms, nil
	}
	ms := t.model(kind, attrs)
	t.cache[k] = ms

	return ms, nil
}

// Run implements Oracle by summing Measure over the graph's topological
// order. A real oracle might instead execute the compiled graph once and
// time it; this reference implementation has no executable kernels to run.
func (t *TableOracle) Run(g GraphView) (float64, error) {
	order, err := g.TopoOrder()
	if err != nil {
		return 0, fmt.Errorf("cost: Run: %w", err)
	}
	var total float64
	for _, op := range order {
		ms, err := Ensure(op, t)
		if err != nil {
			return 0, fmt.Errorf("cost: Run: %w", ErrMeasurementFailed)
		}
		total += ms
	}

	return total, nil
}

func cacheKey(kind catalog.Kind, attrs catalog.Attrs) string {
	b := fmt.Sprintf("%d|%d|%d|%d|%d|%d|%d|%d|%d", kind,
		attrs.OutputChannels, attrs.KernelH, attrs.KernelW,
		attrs.StrideH, attrs.StrideW, attrs.PadH, attrs.PadW, attrs.ActiMode)
	for _, s := range attrs.SplitSizes {
		b += fmt.Sprintf(",%d", s)
	}
	return b
}
