package xfer

import (
	"errors"

	"github.com/graphforge/xflow/catalog"
)

// Sentinel errors for Xfer construction and use. These indicate a bug in
// how the Xfer was authored — they abort Build, and are never produced at
// runtime by a valid Xfer.
var (
	ErrEmptyName           = errors.New("xfer: empty name")
	ErrNoSrcOps            = errors.New("xfer: no source pattern nodes")
	ErrNoDstOps            = errors.New("xfer: no destination nodes")
	ErrForeignSrcOp        = errors.New("xfer: SrcOp not declared on this Xfer")
	ErrForeignDstOp        = errors.New("xfer: DstOp not declared on this Xfer")
	ErrPortIndexOutOfRange = errors.New("xfer: port index out of range")
	ErrDuplicateInputMap   = errors.New("xfer: SrcOp already has a mapInput entry")
	ErrDuplicateOutputMap  = errors.New("xfer: SrcOp already has a mapOutput entry")
	ErrNilBuildFunc        = errors.New("xfer: DstOp has a nil build function")
)

// Comparator is the closed set of one-op and two-op constraint operators:
// =, !=, <, >.
type Comparator int

const (
	CompareEQ Comparator = iota
	CompareNE
	CompareLT
	CompareGT
)

// Eval applies the comparator to (a, b), i.e. "a <cmp> b".
func (c Comparator) Eval(a, b int64) bool {
	switch c {
	case CompareEQ:
		return a == b
	case CompareNE:
		return a != b
	case CompareLT:
		return a < b
	case CompareGT:
		return a > b
	default:
		return false
	}
}

// OneOpConstraint restricts a single matched source node's parameter to
// satisfy (parameter, comparator, value).
type OneOpConstraint struct {
	Param catalog.ParamID
	Cmp   Comparator
	Value int64
}

// TwoOpConstraint relates a parameter of one matched source node to a
// parameter of another, e.g. "Conv A and Conv B have identical kernel
// H/W and strides".
type TwoOpConstraint struct {
	A, B   *SrcOp
	ParamA catalog.ParamID
	ParamB catalog.ParamID
	Cmp    Comparator
}

// SrcOp is one node of the source pattern. Identity is by pointer: the
// same *SrcOp value is referenced from source edges, the binding
// produced by the match engine, and the port maps.
type SrcOp struct {
	Kind        catalog.Kind
	Constraints []OneOpConstraint
}

// SrcEdge is one edge of the source pattern topology, identified by the
// participating SrcOps and their port indices.
type SrcEdge struct {
	From    *SrcOp
	FromIdx int
	To      *SrcOp
	ToIdx   int
}

// Binding is the injective mapping from SrcOp to a concrete matched
// catalog.Op, produced by the match engine and consumed by DstOp.Build
// closures and the rewriter.
type Binding map[*SrcOp]*catalog.Op

// BuildFunc materializes a concrete replacement operator from the current
// match binding and the Model. Shape/attrs are typically derived from the
// bound source operators via binding lookups and catalog.Op.Param.
type BuildFunc func(b Binding, model *catalog.Model) (*catalog.Op, error)

// DstOp is one node of the destination pattern.
type DstOp struct {
	Kind  catalog.Kind
	Build BuildFunc
}

// DstEdge is one edge of the destination pattern's internal topology.
type DstEdge struct {
	From    *DstOp
	FromIdx int
	To      *DstOp
	ToIdx   int
}

// Xfer is the complete, immutable Substitution. Build it with Builder; do
// not construct it by hand.
type Xfer struct {
	Name string

	SrcOps   []*SrcOp
	SrcEdges []SrcEdge

	TwoOpConstraints []TwoOpConstraint

	DstOps   []*DstOp
	DstEdges []DstEdge

	// MapInput[s] = d: the destination node that consumes the external
	// input originally delivered to s.
	MapInput map[*SrcOp]*DstOp
	// MapOutput[s] = d: the destination node that produces the output
	// consumed externally from s.
	MapOutput map[*SrcOp]*DstOp
}
