package dag

import "github.com/graphforge/xflow/catalog"

// AddNode inserts op into the graph's node set. Idempotent: adding an
// already-present op is a no-op. Complexity: O(1) amortized.
func (g *Graph) AddNode(op *catalog.Op) error {
	if op == nil {
		return ErrNilOp
	}
	g.muNodes.Lock()
	if _, ok := g.nodes[op]; ok {
		g.muNodes.Unlock()
		return nil
	}
	g.nodes[op] = struct{}{}
	g.muNodes.Unlock()

	g.muEdges.Lock()
	if _, ok := g.inEdges[op]; !ok {
		g.inEdges[op] = nil
	}
	if _, ok := g.outEdges[op]; !ok {
		g.outEdges[op] = nil
	}
	g.muEdges.Unlock()

	g.invalidate()

	return nil
}

// HasNode reports whether op belongs to this graph.
func (g *Graph) HasNode(op *catalog.Op) bool {
	if op == nil {
		return false
	}
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	_, ok := g.nodes[op]

	return ok
}

// RemoveNode deletes op and every edge incident to it. Used only during
// rewriting to produce a derived graph. Complexity: O(deg(op)).
func (g *Graph) RemoveNode(op *catalog.Op) error {
	if op == nil {
		return ErrNilOp
	}
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	if _, ok := g.nodes[op]; !ok {
		return ErrNodeNotFound
	}

	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	for _, e := range g.inEdges[op] {
		g.outEdges[e.Src] = removeEdge(g.outEdges[e.Src], e)
	}
	for _, e := range g.outEdges[op] {
		g.inEdges[e.Dst] = removeEdge(g.inEdges[e.Dst], e)
	}
	delete(g.inEdges, op)
	delete(g.outEdges, op)
	delete(g.nodes, op)

	g.invalidate()

	return nil
}

// Nodes returns every node currently in the graph, in no particular
// order. Callers needing a deterministic order should use TopoOrder.
func (g *Graph) Nodes() []*catalog.Op {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	out := make([]*catalog.Op, 0, len(g.nodes))
	for op := range g.nodes {
		out = append(out, op)
	}

	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	return len(g.nodes)
}

func removeEdge(edges []Edge, target Edge) []Edge {
	out := edges[:0]
	for _, e := range edges {
		if e != target {
			out = append(out, e)
		}
	}

	return out
}
