package dag

import (
	"fmt"

	"github.com/graphforge/xflow/cost"
)

// TotalCost returns the sum of every node's CostOracle runtime. This is
// what the search loop costs graphs by; the result is cached and
// invalidated by any structural change, and assumes a single Oracle is
// used consistently across a search (as the search driver does).
func (g *Graph) TotalCost(oracle cost.Oracle) (float64, error) {
	g.muCache.Lock()
	if g.costValid {
		c := g.costVal
		g.muCache.Unlock()
		return c, nil
	}
	g.muCache.Unlock()

	var total float64
	for _, op := range g.Nodes() {
		ms, err := cost.Ensure(op, oracle)
		if err != nil {
			return 0, fmt.Errorf("dag: TotalCost: %w", cost.ErrMeasurementFailed)
		}
		total += ms
	}

	g.muCache.Lock()
	g.costVal = total
	g.costValid = true
	g.muCache.Unlock()

	return total, nil
}

// Run asks the oracle to measure this graph's end-to-end runtime by
// executing each node in topological order. Unlike TotalCost, this is
// used only for baseline/final reporting; the search loop never calls
// Run.
func (g *Graph) Run(oracle cost.Oracle) (float64, error) {
	ms, err := oracle.Run(g)
	if err != nil {
		return 0, fmt.Errorf("dag: Run: %w", err)
	}

	return ms, nil
}
