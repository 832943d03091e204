package dag

import (
	"sort"

	"github.com/graphforge/xflow/catalog"
)

// TopoOrder returns the graph's nodes in a topological order, breaking
// ties deterministically by ascending Op.ID, the same tie-break the match
// engine uses to enumerate bindings deterministically. Returns ErrCycle if
// the graph is not acyclic.
//
// TopoOrder also makes *Graph satisfy cost.GraphView, so an Oracle can
// execute a Graph end-to-end without the cost package importing dag.
func (g *Graph) TopoOrder() ([]*catalog.Op, error) {
	g.muNodes.RLock()
	nodes := make([]*catalog.Op, 0, len(g.nodes))
	for op := range g.nodes {
		nodes = append(nodes, op)
	}
	g.muNodes.RUnlock()

	g.muEdges.RLock()
	indegree := make(map[*catalog.Op]int, len(nodes))
	for _, op := range nodes {
		indegree[op] = len(g.inEdges[op])
	}
	outEdges := make(map[*catalog.Op][]Edge, len(nodes))
	for _, op := range nodes {
		edges := make([]Edge, len(g.outEdges[op]))
		copy(edges, g.outEdges[op])
		outEdges[op] = edges
	}
	g.muEdges.RUnlock()

	var ready []*catalog.Op
	for _, op := range nodes {
		if indegree[op] == 0 {
			ready = append(ready, op)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].ID < ready[j].ID })

	order := make([]*catalog.Op, 0, len(nodes))
	for len(ready) > 0 {
		op := ready[0]
		ready = ready[1:]
		order = append(order, op)

		var newlyReady []*catalog.Op
		for _, e := range outEdges[op] {
			indegree[e.Dst]--
			if indegree[e.Dst] == 0 {
				newlyReady = append(newlyReady, e.Dst)
			}
		}
		if len(newlyReady) > 0 {
			ready = append(ready, newlyReady...)
			sort.Slice(ready, func(i, j int) bool { return ready[i].ID < ready[j].ID })
		}
	}

	if len(order) != len(nodes) {
		return nil, ErrCycle
	}

	return order, nil
}
