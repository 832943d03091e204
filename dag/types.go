package dag

import (
	"errors"
	"sync"

	"github.com/graphforge/xflow/catalog"
)

// Sentinel errors for Graph operations.
var (
	// ErrNilOp indicates a nil *catalog.Op was passed where a concrete
	// operator was required.
	ErrNilOp = errors.New("dag: nil op")

	// ErrNodeNotFound indicates an operation referenced a node absent
	// from the graph.
	ErrNodeNotFound = errors.New("dag: node not found")

	// ErrPortIndexOutOfRange indicates srcIdx/dstIdx fell outside an
	// operator's declared output/input arity.
	ErrPortIndexOutOfRange = errors.New("dag: port index out of range")

	// ErrInputPortOccupied indicates a second edge targeted an input
	// port that already has an incoming edge: every input port of every
	// non-source node has exactly one producer.
	ErrInputPortOccupied = errors.New("dag: input port already has an incoming edge")

	// ErrCycle indicates TopoOrder found a cycle in the graph. AddEdge
	// does not check for cycles itself.
	ErrCycle = errors.New("dag: cycle detected")
)

// Edge is a directed connection (srcOp, srcIdx) -> (dstOp, dstIdx), unique
// by that 4-tuple.
type Edge struct {
	Src    *catalog.Op
	SrcIdx int
	Dst    *catalog.Op
	DstIdx int
}

// GraphOption configures a Graph at construction time. There is currently
// one Graph flavor, but the option is kept so future knobs (e.g. a
// capacity hint) don't force a constructor signature change.
type GraphOption func(g *Graph)

// Graph is the core in-memory DAG of operator nodes.
//
// muNodes guards the node set; muEdges guards inEdges/outEdges. Where both
// are held at once (RemoveNode, Clone), muNodes is taken first. muCache
// guards the lazily-computed,
// change-invalidated hash and cost.
type Graph struct {
	model *catalog.Model

	muNodes sync.RWMutex
	nodes   map[*catalog.Op]struct{}

	muEdges  sync.RWMutex
	inEdges  map[*catalog.Op][]Edge
	outEdges map[*catalog.Op][]Edge

	muCache   sync.Mutex
	hashValid bool
	hashVal   uint64
	costValid bool
	costVal   float64
}

// NewGraph creates an empty Graph backed by model. model supplies the
// operator interning table shared across every Graph derived from this
// one.
func NewGraph(model *catalog.Model, opts ...GraphOption) *Graph {
	g := &Graph{
		model:    model,
		nodes:    make(map[*catalog.Op]struct{}),
		inEdges:  make(map[*catalog.Op][]Edge),
		outEdges: make(map[*catalog.Op][]Edge),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Model returns the interning table backing this Graph.
func (g *Graph) Model() *catalog.Model {
	return g.model
}

// invalidate clears the cached hash and cost. Must be called after any
// structural change (AddNode, RemoveNode, AddEdge, RemoveEdge).
func (g *Graph) invalidate() {
	g.muCache.Lock()
	g.hashValid = false
	g.costValid = false
	g.muCache.Unlock()
}
