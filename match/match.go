package match

import (
	"sort"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/dag"
	"github.com/graphforge/xflow/xfer"
)

// FindAll enumerates every valid binding of x's source pattern to
// concrete operators in g. Bindings are returned in deterministic
// enumeration order.
func FindAll(x *xfer.Xfer, g *dag.Graph) []xfer.Binding {
	candidates := g.Nodes()
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	s := &searcher{x: x, g: g, candidates: candidates}
	s.used = make(map[*catalog.Op]bool, len(x.SrcOps))
	s.binding = make(xfer.Binding, len(x.SrcOps))
	s.backtrack(0)

	return s.results
}

type searcher struct {
	x          *xfer.Xfer
	g          *dag.Graph
	candidates []*catalog.Op

	binding xfer.Binding
	used    map[*catalog.Op]bool
	results []xfer.Binding
}

func (s *searcher) backtrack(depth int) {
	if depth == len(s.x.SrcOps) {
		if s.checkTwoOpConstraints() && s.checkExternalEdgeSafety() {
			s.results = append(s.results, cloneBinding(s.binding))
		}
		return
	}

	srcOp := s.x.SrcOps[depth]
	for _, op := range s.candidates {
		if s.used[op] {
			continue
		}
		if op.Kind != srcOp.Kind {
			continue
		}
		if !satisfiesOneOpConstraints(op, srcOp.Constraints) {
			continue
		}
		if !s.satisfiesEdgeConsistency(srcOp, op) {
			continue
		}

		s.binding[srcOp] = op
		s.used[op] = true
		s.backtrack(depth + 1)
		delete(s.used, op)
		delete(s.binding, srcOp)
	}
}

func satisfiesOneOpConstraints(op *catalog.Op, constraints []xfer.OneOpConstraint) bool {
	for _, c := range constraints {
		v, ok := op.Param(c.Param)
		if !ok || !c.Cmp.Eval(v, c.Value) {
			return false
		}
	}
	return true
}

// satisfiesEdgeConsistency checks, for every source pattern edge touching
// srcOp where the other endpoint is already bound, that the
// corresponding concrete edge exists in the graph with matching port
// indices.
func (s *searcher) satisfiesEdgeConsistency(srcOp *xfer.SrcOp, op *catalog.Op) bool {
	for _, e := range s.x.SrcEdges {
		switch {
		case e.To == srcOp:
			other, ok := s.binding[e.From]
			if !ok {
				continue // e.From not bound yet; nothing to check
			}
			if !s.g.HasEdgeExact(other, e.FromIdx, op, e.ToIdx) {
				return false
			}
		case e.From == srcOp:
			other, ok := s.binding[e.To]
			if !ok {
				continue
			}
			if !s.g.HasEdgeExact(op, e.FromIdx, other, e.ToIdx) {
				return false
			}
		}
	}
	return true
}

func (s *searcher) checkTwoOpConstraints() bool {
	for _, c := range s.x.TwoOpConstraints {
		opA, opB := s.binding[c.A], s.binding[c.B]
		va, ok := opA.Param(c.ParamA)
		if !ok {
			return false
		}
		vb, ok := opB.Param(c.ParamB)
		if !ok {
			return false
		}
		if !c.Cmp.Eval(va, vb) {
			return false
		}
	}
	return true
}

// checkExternalEdgeSafety enforces the substitution boundary rule: for
// every matched srcOp with no mapOutput, every outgoing edge of its bound
// operator must terminate at another matched operator.
func (s *searcher) checkExternalEdgeSafety() bool {
	matched := make(map[*catalog.Op]bool, len(s.binding))
	for _, op := range s.binding {
		matched[op] = true
	}
	for srcOp, op := range s.binding {
		if s.x.MapOutput[srcOp] != nil {
			continue // boundary output explicitly exposed; leaks through it are fine
		}
		for _, e := range s.g.OutEdges(op) {
			if !matched[e.Dst] {
				return false
			}
		}
	}
	return true
}

func cloneBinding(b xfer.Binding) xfer.Binding {
	out := make(xfer.Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
