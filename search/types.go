package search

import (
	"container/heap"

	"github.com/graphforge/xflow/dag"
)

// item is one entry of the frontier: a candidate Graph together with its
// already-computed total cost and the monotonic sequence number recording
// insertion order, used to break cost ties deterministically.
type item struct {
	g       *dag.Graph
	cost    float64
	seq     uint64
	heapIdx int
}

// frontier implements heap.Interface over item, ordered by ascending
// cost and, for equal cost, ascending insertion sequence.
type frontier []*item

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].heapIdx = i
	f[j].heapIdx = j
}

func (f *frontier) Push(x interface{}) {
	it := x.(*item)
	it.heapIdx = len(*f)
	*f = append(*f, it)
}

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.heapIdx = -1
	*f = old[:n-1]
	return it
}

var _ heap.Interface = (*frontier)(nil)
