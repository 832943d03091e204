package xfer

import (
	"fmt"

	"github.com/graphforge/xflow/catalog"
)

// Builder accumulates the five declaration steps before producing an
// immutable Xfer: source nodes and their one-op constraints, source
// edges, two-op constraints, destination nodes, and destination edges
// plus port maps. A Builder is not safe for concurrent use; build one
// Xfer per Builder and discard it.
type Builder struct {
	name string

	srcOps   []*SrcOp
	srcEdges []SrcEdge

	twoOp []TwoOpConstraint

	dstOps   []*DstOp
	dstEdges []DstEdge

	mapInput  map[*SrcOp]*DstOp
	mapOutput map[*SrcOp]*DstOp
}

// NewBuilder starts authoring a new Xfer named name (e.g. "fuse-conv-relu").
func NewBuilder(name string) *Builder {
	return &Builder{
		name:      name,
		mapInput:  make(map[*SrcOp]*DstOp),
		mapOutput: make(map[*SrcOp]*DstOp),
	}
}

// AddSrcOp declares a source pattern node with the given required kind
// and one-op constraints. Returns the *SrcOp so callers can reference it
// from AddSrcEdge, AddTwoOpConstraint, MapInput, and MapOutput.
func (b *Builder) AddSrcOp(kind catalog.Kind, constraints ...OneOpConstraint) *SrcOp {
	s := &SrcOp{Kind: kind, Constraints: append([]OneOpConstraint(nil), constraints...)}
	b.srcOps = append(b.srcOps, s)
	return s
}

// AddSrcEdge declares one edge of the source pattern topology.
func (b *Builder) AddSrcEdge(from *SrcOp, fromIdx int, to *SrcOp, toIdx int) {
	b.srcEdges = append(b.srcEdges, SrcEdge{From: from, FromIdx: fromIdx, To: to, ToIdx: toIdx})
}

// AddTwoOpConstraint declares a constraint relating a parameter of one
// matched source node to a parameter of another.
func (b *Builder) AddTwoOpConstraint(c TwoOpConstraint) {
	b.twoOp = append(b.twoOp, c)
}

// AddDstOp declares a destination node and its construction closure.
// Returns the *DstOp so callers can reference it from AddDstEdge,
// MapInput, and MapOutput.
func (b *Builder) AddDstOp(d *DstOp) *DstOp {
	b.dstOps = append(b.dstOps, d)
	return d
}

// AddDstEdge declares one edge of the destination pattern's internal
// topology.
func (b *Builder) AddDstEdge(from *DstOp, fromIdx int, to *DstOp, toIdx int) {
	b.dstEdges = append(b.dstEdges, DstEdge{From: from, FromIdx: fromIdx, To: to, ToIdx: toIdx})
}

// MapInput records that d consumes the external input originally
// delivered to s.
func (b *Builder) MapInput(s *SrcOp, d *DstOp) {
	b.mapInput[s] = d
}

// MapOutput records that d produces the output consumed externally from s.
func (b *Builder) MapOutput(s *SrcOp, d *DstOp) {
	b.mapOutput[s] = d
}

// Build validates and finalizes the Xfer. It rejects malformed
// substitutions: edges/constraints/maps referencing nodes not declared on
// this Builder, out-of-range port indices on a fixed-arity kind, or a
// DstOp with a nil build function. A second MapInput or MapOutput call for
// the same SrcOp replaces the earlier entry; Build does not detect it.
// Variable-arity kinds (Concat, Split) cannot be range-checked here since
// their arity isn't known until an instance is constructed. A bad port
// index against one of those on a destination edge surfaces later, at
// rewrite time, as rewrite.ErrMalformedXfer; on a source edge the pattern
// simply never matches.
func (b *Builder) Build() (*Xfer, error) {
	if b.name == "" {
		return nil, ErrEmptyName
	}
	if len(b.srcOps) == 0 {
		return nil, fmt.Errorf("xfer %q: %w", b.name, ErrNoSrcOps)
	}
	if len(b.dstOps) == 0 {
		return nil, fmt.Errorf("xfer %q: %w", b.name, ErrNoDstOps)
	}

	srcSet := toSet(b.srcOps)
	dstSet := toDstSet(b.dstOps)

	for _, e := range b.srcEdges {
		if !srcSet[e.From] || !srcSet[e.To] {
			return nil, fmt.Errorf("xfer %q: src edge: %w", b.name, ErrForeignSrcOp)
		}
		if _, out, fixed := catalog.FixedArity(e.From.Kind); fixed && (e.FromIdx < 0 || e.FromIdx >= out) {
			return nil, fmt.Errorf("xfer %q: src edge: %w", b.name, ErrPortIndexOutOfRange)
		}
		if in, _, fixed := catalog.FixedArity(e.To.Kind); fixed && (e.ToIdx < 0 || e.ToIdx >= in) {
			return nil, fmt.Errorf("xfer %q: src edge: %w", b.name, ErrPortIndexOutOfRange)
		}
	}
	for _, c := range b.twoOp {
		if !srcSet[c.A] || !srcSet[c.B] {
			return nil, fmt.Errorf("xfer %q: two-op constraint: %w", b.name, ErrForeignSrcOp)
		}
	}
	for _, e := range b.dstEdges {
		if !dstSet[e.From] || !dstSet[e.To] {
			return nil, fmt.Errorf("xfer %q: dst edge: %w", b.name, ErrForeignDstOp)
		}
		if _, out, fixed := catalog.FixedArity(e.From.Kind); fixed && (e.FromIdx < 0 || e.FromIdx >= out) {
			return nil, fmt.Errorf("xfer %q: dst edge: %w", b.name, ErrPortIndexOutOfRange)
		}
		if in, _, fixed := catalog.FixedArity(e.To.Kind); fixed && (e.ToIdx < 0 || e.ToIdx >= in) {
			return nil, fmt.Errorf("xfer %q: dst edge: %w", b.name, ErrPortIndexOutOfRange)
		}
	}
	for _, d := range b.dstOps {
		if d.Build == nil {
			return nil, fmt.Errorf("xfer %q: %w", b.name, ErrNilBuildFunc)
		}
	}

	mapInput := make(map[*SrcOp]*DstOp, len(b.mapInput))
	for s, d := range b.mapInput {
		if !srcSet[s] {
			return nil, fmt.Errorf("xfer %q: mapInput: %w", b.name, ErrForeignSrcOp)
		}
		if !dstSet[d] {
			return nil, fmt.Errorf("xfer %q: mapInput: %w", b.name, ErrForeignDstOp)
		}
		mapInput[s] = d
	}
	mapOutput := make(map[*SrcOp]*DstOp, len(b.mapOutput))
	for s, d := range b.mapOutput {
		if !srcSet[s] {
			return nil, fmt.Errorf("xfer %q: mapOutput: %w", b.name, ErrForeignSrcOp)
		}
		if !dstSet[d] {
			return nil, fmt.Errorf("xfer %q: mapOutput: %w", b.name, ErrForeignDstOp)
		}
		mapOutput[s] = d
	}

	return &Xfer{
		Name:             b.name,
		SrcOps:           append([]*SrcOp(nil), b.srcOps...),
		SrcEdges:         append([]SrcEdge(nil), b.srcEdges...),
		TwoOpConstraints: append([]TwoOpConstraint(nil), b.twoOp...),
		DstOps:           append([]*DstOp(nil), b.dstOps...),
		DstEdges:         append([]DstEdge(nil), b.dstEdges...),
		MapInput:         mapInput,
		MapOutput:        mapOutput,
	}, nil
}

func toSet(ops []*SrcOp) map[*SrcOp]bool {
	m := make(map[*SrcOp]bool, len(ops))
	for _, o := range ops {
		m[o] = true
	}
	return m
}

func toDstSet(ops []*DstOp) map[*DstOp]bool {
	m := make(map[*DstOp]bool, len(ops))
	for _, o := range ops {
		m[o] = true
	}
	return m
}
