package search

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/graphforge/xflow/cost"
	"github.com/graphforge/xflow/dag"
	"github.com/graphforge/xflow/match"
	"github.com/graphforge/xflow/rewrite"
	"github.com/graphforge/xflow/xfer"
)

// ErrNilInput indicates Run was called with a nil input Graph.
var ErrNilInput = errors.New("search: nil input graph")

// Result is the outcome of a search run: the cheapest graph found, its
// cost, and how many frontier nodes were expanded to find it.
type Result struct {
	Best     *dag.Graph
	BestCost float64
	Expanded int
}

// Run executes the best-first rewrite search over input, applying every
// Xfer in xfers (in registration order) at each expansion step and costing
// candidates with oracle. xfers may be empty, in which case the input
// Graph is returned unchanged.
func Run(input *dag.Graph, xfers []*xfer.Xfer, oracle cost.Oracle, opts ...Option) (*Result, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	bestCost, err := input.TotalCost(oracle)
	if err != nil {
		return nil, fmt.Errorf("search: initial cost: %w", err)
	}

	if !cfg.Optimize {
		return &Result{Best: input, BestCost: bestCost, Expanded: 0}, nil
	}

	model := input.Model()
	seen := map[uint64]bool{}
	inputHash, err := input.Hash()
	if err != nil {
		return nil, fmt.Errorf("search: initial hash: %w", err)
	}
	seen[inputHash] = true

	fr := frontier{}
	heap.Init(&fr)
	var seq uint64
	heap.Push(&fr, &item{g: input, cost: bestCost, seq: seq})
	seq++

	best := input
	expanded := 0

	// Pop, update best, prune-check (a pruned graph is dropped before the
	// budget check and never counts toward expanded), budget check, then
	// count the expansion and apply every Xfer.
	for fr.Len() > 0 {
		it := heap.Pop(&fr).(*item)
		g, c := it.g, it.cost

		if c < bestCost {
			best = g
			bestCost = c
		}
		if c > cfg.Beta*bestCost {
			continue
		}
		if expanded > cfg.Budget {
			break
		}
		expanded++

		for _, x := range xfers {
			for _, binding := range match.FindAll(x, g) {
				child, rerr := rewrite.Rewrite(x, model, g, binding)
				if rerr != nil {
					if errors.Is(rerr, rewrite.ErrShapeMismatch) {
						continue
					}
					return nil, fmt.Errorf("search: %w", rerr)
				}

				h, herr := child.Hash()
				if herr != nil {
					return nil, fmt.Errorf("search: child hash: %w", herr)
				}
				if seen[h] {
					continue
				}

				childCost, cerr := child.TotalCost(oracle)
				if cerr != nil {
					return nil, fmt.Errorf("search: measure: %w", cerr)
				}

				seen[h] = true
				heap.Push(&fr, &item{g: child, cost: childCost, seq: seq})
				seq++
			}
		}

		if cfg.Progress != nil {
			cfg.Progress(expanded, bestCost)
		}
	}

	return &Result{Best: best, BestCost: bestCost, Expanded: expanded}, nil
}
