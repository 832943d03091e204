package dag

import "github.com/graphforge/xflow/catalog"

// AddEdge extends both the inEdges and outEdges mappings with the edge
// (src, srcIdx) -> (dst, dstIdx). Both endpoints are added to the node
// set if not already present. Complexity: O(1) expected.
//
// Returns ErrPortIndexOutOfRange if srcIdx/dstIdx fall outside the
// operator's declared arity, or ErrInputPortOccupied if dst already has an
// incoming edge at dstIdx: every input port has exactly one producer.
func (g *Graph) AddEdge(src *catalog.Op, srcIdx int, dst *catalog.Op, dstIdx int) error {
	if src == nil || dst == nil {
		return ErrNilOp
	}
	if srcIdx < 0 || srcIdx >= src.NumOutputs {
		return ErrPortIndexOutOfRange
	}
	if dstIdx < 0 || dstIdx >= dst.NumInputs {
		return ErrPortIndexOutOfRange
	}
	if err := g.AddNode(src); err != nil {
		return err
	}
	if err := g.AddNode(dst); err != nil {
		return err
	}

	e := Edge{Src: src, SrcIdx: srcIdx, Dst: dst, DstIdx: dstIdx}

	g.muEdges.Lock()
	for _, existing := range g.inEdges[dst] {
		if existing.DstIdx == dstIdx {
			g.muEdges.Unlock()
			return ErrInputPortOccupied
		}
	}
	g.inEdges[dst] = append(g.inEdges[dst], e)
	g.outEdges[src] = append(g.outEdges[src], e)
	g.muEdges.Unlock()

	g.invalidate()

	return nil
}

// RemoveEdge deletes the edge identified by the 4-tuple. Returns
// ErrNodeNotFound (reused here to mean "no such edge") if no matching
// edge exists.
func (g *Graph) RemoveEdge(src *catalog.Op, srcIdx int, dst *catalog.Op, dstIdx int) error {
	e := Edge{Src: src, SrcIdx: srcIdx, Dst: dst, DstIdx: dstIdx}

	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	found := false
	for _, existing := range g.inEdges[dst] {
		if existing == e {
			found = true
			break
		}
	}
	if !found {
		return ErrNodeNotFound
	}
	g.inEdges[dst] = removeEdge(g.inEdges[dst], e)
	g.outEdges[src] = removeEdge(g.outEdges[src], e)
	g.invalidate()

	return nil
}

// HasEdgeExact reports whether the exact edge (src, srcIdx) -> (dst,
// dstIdx) exists, used by the match engine to verify source-pattern edge
// consistency against a partial binding.
func (g *Graph) HasEdgeExact(src *catalog.Op, srcIdx int, dst *catalog.Op, dstIdx int) bool {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	for _, e := range g.inEdges[dst] {
		if e.Src == src && e.SrcIdx == srcIdx && e.DstIdx == dstIdx {
			return true
		}
	}
	return false
}

// InEdges returns the edges terminating at op, in no particular order.
func (g *Graph) InEdges(op *catalog.Op) []Edge {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	out := make([]Edge, len(g.inEdges[op]))
	copy(out, g.inEdges[op])

	return out
}

// OutEdges returns the edges originating at op, in no particular order.
func (g *Graph) OutEdges(op *catalog.Op) []Edge {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	out := make([]Edge, len(g.outEdges[op]))
	copy(out, g.outEdges[op])

	return out
}

// EdgeCount returns the total number of edges in the graph.
func (g *Graph) EdgeCount() int {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	n := 0
	for _, edges := range g.outEdges {
		n += len(edges)
	}

	return n
}
