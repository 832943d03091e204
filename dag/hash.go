package dag

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/graphforge/xflow/catalog"
)

// Hash computes a deterministic content digest: a digest over the
// multiset of (op.kind, op.attrs, sorted incoming (srcHash, srcIdx,
// dstIdx) tuples) for every node, computed bottom-up in topological
// order. Two structurally-isomorphic graphs with equal attributes hash
// equal; Op.ID never participates.
//
// The result is cached and invalidated by any structural change
// (AddNode, RemoveNode, AddEdge, RemoveEdge).
func (g *Graph) Hash() (uint64, error) {
	g.muCache.Lock()
	if g.hashValid {
		h := g.hashVal
		g.muCache.Unlock()
		return h, nil
	}
	g.muCache.Unlock()

	order, err := g.TopoOrder()
	if err != nil {
		return 0, fmt.Errorf("dag: Hash: %w", err)
	}

	nodeHash := make(map[*catalog.Op]uint64, len(order))
	var total uint64
	for _, op := range order {
		in := g.InEdges(op)
		type triple struct {
			srcHash uint64
			srcIdx  int
			dstIdx  int
		}
		triples := make([]triple, 0, len(in))
		for _, e := range in {
			triples = append(triples, triple{srcHash: nodeHash[e.Src], srcIdx: e.SrcIdx, dstIdx: e.DstIdx})
		}
		sort.Slice(triples, func(i, j int) bool {
			if triples[i].srcHash != triples[j].srcHash {
				return triples[i].srcHash < triples[j].srcHash
			}
			if triples[i].srcIdx != triples[j].srcIdx {
				return triples[i].srcIdx < triples[j].srcIdx
			}
			return triples[i].dstIdx < triples[j].dstIdx
		})

		h := fnv.New64a()
		fmt.Fprintf(h, "%d|%s", op.Kind, attrsEncoding(op.Attrs))
		for _, t := range triples {
			fmt.Fprintf(h, ";%d,%d,%d", t.srcHash, t.srcIdx, t.dstIdx)
		}
		nh := h.Sum64()
		nodeHash[op] = nh
		// Commutative combination: the final digest must not depend on
		// topological tie-break order, only on the node multiset.
		total += nh
	}

	g.muCache.Lock()
	g.hashVal = total
	g.hashValid = true
	g.muCache.Unlock()

	return total, nil
}

func attrsEncoding(a catalog.Attrs) string {
	s := fmt.Sprintf("%d|%d|%d|%d|%d|%d|%d|%d",
		a.OutputChannels, a.KernelH, a.KernelW, a.StrideH, a.StrideW,
		a.PadH, a.PadW, a.ActiMode)
	for _, v := range a.SplitSizes {
		s += fmt.Sprintf(",%d", v)
	}

	return s
}
