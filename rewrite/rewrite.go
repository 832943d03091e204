package rewrite

import (
	"errors"
	"fmt"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/dag"
	"github.com/graphforge/xflow/xfer"
)

// Sentinel errors for the rewrite step. ErrCyclicRewrite and
// ErrMalformedXfer indicate a bug in how the Xfer was authored;
// ErrShapeMismatch is the recoverable, per-rewrite error the search driver
// treats as "discard this child and continue".
var (
	ErrCyclicRewrite = errors.New("rewrite: cyclic result rejected")
	ErrMalformedXfer = errors.New("rewrite: malformed substitution")
	ErrShapeMismatch = errors.New("rewrite: shape/port mismatch during boundary rewiring")
)

// Rewrite applies a single validated binding: it builds the destination
// operators, derives a child Graph from parent with the matched subgraph
// replaced and the boundary rewired, and verifies the child is acyclic
// before returning it.
func Rewrite(x *xfer.Xfer, model *catalog.Model, parent *dag.Graph, binding xfer.Binding) (*dag.Graph, error) {
	// Step 1: construct destination operators in declaration order.
	dstBinding := make(map[*xfer.DstOp]*catalog.Op, len(x.DstOps))
	for _, d := range x.DstOps {
		op, err := d.Build(binding, model)
		if err != nil {
			return nil, fmt.Errorf("rewrite %q: %w: %v", x.Name, ErrMalformedXfer, err)
		}
		if op == nil {
			return nil, fmt.Errorf("rewrite %q: dst op build returned nil: %w", x.Name, ErrMalformedXfer)
		}
		dstBinding[d] = op
	}

	// Step 2: structural copy of the parent.
	child := parent.Clone()

	// Step 3: remove the matched image and its incident edges.
	matched := make(map[*catalog.Op]bool, len(binding))
	for _, op := range binding {
		matched[op] = true
	}
	for op := range matched {
		if child.HasNode(op) {
			if err := child.RemoveNode(op); err != nil {
				return nil, fmt.Errorf("rewrite %q: removing matched node: %w", x.Name, ErrMalformedXfer)
			}
		}
	}

	// Step 4: add destination nodes and destination-internal edges.
	for _, op := range dstBinding {
		if err := child.AddNode(op); err != nil {
			return nil, fmt.Errorf("rewrite %q: adding dst node: %w", x.Name, ErrMalformedXfer)
		}
	}
	for _, e := range x.DstEdges {
		src, to := dstBinding[e.From], dstBinding[e.To]
		if err := child.AddEdge(src, e.FromIdx, to, e.ToIdx); err != nil {
			return nil, fmt.Errorf("rewrite %q: dst-internal edge: %w: %v", x.Name, ErrMalformedXfer, err)
		}
	}

	// Step 5: rewire the boundary.
	if err := rewireInputs(x, parent, child, binding, dstBinding, matched); err != nil {
		return nil, err
	}
	if err := rewireOutputs(x, parent, child, binding, dstBinding, matched); err != nil {
		return nil, err
	}

	// Step 6: reject cyclic results.
	if _, err := child.TopoOrder(); err != nil {
		return nil, fmt.Errorf("rewrite %q: %w", x.Name, ErrCyclicRewrite)
	}

	return child, nil
}

// rewireInputs reconnects, for every SrcOp s with MapInput[s] = d, every
// incoming edge to β(s) in the parent that originated outside the matched
// set onto d at the same destination port.
func rewireInputs(x *xfer.Xfer, parent, child *dag.Graph, binding xfer.Binding, dstBinding map[*xfer.DstOp]*catalog.Op, matched map[*catalog.Op]bool) error {
	for s, d := range x.MapInput {
		boundS, ok := binding[s]
		if !ok {
			continue
		}
		target, ok := dstBinding[d]
		if !ok {
			return fmt.Errorf("rewrite %q: mapInput targets unbuilt dst op: %w", x.Name, ErrMalformedXfer)
		}
		for _, e := range parent.InEdges(boundS) {
			if matched[e.Src] {
				continue // internal producer, not an external boundary edge
			}
			if err := child.AddEdge(e.Src, e.SrcIdx, target, e.DstIdx); err != nil {
				return fmt.Errorf("rewrite %q: input boundary: %w", x.Name, ErrShapeMismatch)
			}
		}
	}
	return nil
}

// rewireOutputs reconnects, for every SrcOp s with MapOutput[s] = d, every
// outgoing edge from β(s) in the parent that terminated outside the
// matched set onto d at the same source port.
func rewireOutputs(x *xfer.Xfer, parent, child *dag.Graph, binding xfer.Binding, dstBinding map[*xfer.DstOp]*catalog.Op, matched map[*catalog.Op]bool) error {
	for s, d := range x.MapOutput {
		boundS, ok := binding[s]
		if !ok {
			continue
		}
		source, ok := dstBinding[d]
		if !ok {
			return fmt.Errorf("rewrite %q: mapOutput targets unbuilt dst op: %w", x.Name, ErrMalformedXfer)
		}
		for _, e := range parent.OutEdges(boundS) {
			if matched[e.Dst] {
				continue // internal consumer, not an external boundary edge
			}
			if err := child.AddEdge(source, e.SrcIdx, e.Dst, e.DstIdx); err != nil {
				return fmt.Errorf("rewrite %q: output boundary: %w", x.Name, ErrShapeMismatch)
			}
		}
	}
	return nil
}
