package dag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/cost"
	"github.com/graphforge/xflow/dag"
)

func unitOracle(t *testing.T) cost.Oracle {
	t.Helper()
	o, err := cost.NewTableOracle(func(kind catalog.Kind, attrs catalog.Attrs) float64 { return 1 })
	require.NoError(t, err)
	return o
}

func buildChain(t *testing.T) *dag.Graph {
	t.Helper()
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	conv, err := g.Conv2D(in, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)
	_, err = g.Pool2DMax(conv, 2, 2, 2, 2, 0, 0)
	require.NoError(t, err)
	return g
}

func TestBuilder_ChainWellFormed(t *testing.T) {
	g := buildChain(t)
	assert.Equal(t, 3, g.NodeCount())

	order, err := g.TopoOrder()
	require.NoError(t, err)
	assert.Len(t, order, 3)
	assert.Equal(t, catalog.KindNoOp, order[0].Kind)
	assert.Equal(t, catalog.KindPool2DMax, order[2].Kind)
}

func TestAddEdge_RejectsOccupiedInputPort(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	conv, err := g.Conv2D(in, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)

	other := model.GetOrCreate(catalog.KindNoOp, catalog.Attrs{}, 0, 1)
	require.NoError(t, g.AddNode(other))

	err = g.AddEdge(other, 0, conv.Op, 0)
	assert.ErrorIs(t, err, dag.ErrInputPortOccupied)
}

func TestAddEdge_RejectsOutOfRangePort(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	conv, err := g.Conv2D(in, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)

	err = g.AddEdge(in.Op, 5, conv.Op, 0)
	assert.ErrorIs(t, err, dag.ErrPortIndexOutOfRange)
}

func TestRemoveNode_CleansIncidentEdges(t *testing.T) {
	g := buildChain(t)
	order, err := g.TopoOrder()
	require.NoError(t, err)
	conv := order[1]

	require.NoError(t, g.RemoveNode(conv))
	assert.Equal(t, 2, g.NodeCount())
	assert.Empty(t, g.InEdges(order[2]))
}

func TestClone_IndependentOfParent(t *testing.T) {
	g := buildChain(t)
	clone := g.Clone()

	order, err := g.TopoOrder()
	require.NoError(t, err)
	require.NoError(t, clone.RemoveNode(order[2]))

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, clone.NodeCount())
}

func TestHash_StructurallyIsomorphicGraphsMatch(t *testing.T) {
	modelA := catalog.NewModel()
	a := dag.NewGraph(modelA)
	inA, err := a.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	_, err = a.Conv2D(inA, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)

	modelB := catalog.NewModel()
	b := dag.NewGraph(modelB)
	inB, err := b.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	_, err = b.Conv2D(inB, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)

	hashA, err := a.Hash()
	require.NoError(t, err)
	hashB, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB)
}

func TestHash_DiffersOnAttrs(t *testing.T) {
	g1 := buildChain(t)
	model := catalog.NewModel()
	g2 := dag.NewGraph(model)
	in, err := g2.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	_, err = g2.Conv2D(in, 99, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)

	h1, err := g1.Hash()
	require.NoError(t, err)
	h2, err := g2.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestTotalCost_CachesUntilInvalidated(t *testing.T) {
	g := buildChain(t)
	oracle := unitOracle(t)

	c1, err := g.TotalCost(oracle)
	require.NoError(t, err)
	assert.Equal(t, float64(3), c1)

	order, err := g.TopoOrder()
	require.NoError(t, err)
	require.NoError(t, g.RemoveNode(order[2]))

	c2, err := g.TotalCost(oracle)
	require.NoError(t, err)
	assert.Equal(t, float64(2), c2)
}

func TestTopoOrder_DetectsCycle(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	a := model.GetOrCreate(catalog.KindActivation, catalog.Attrs{ActiMode: catalog.ActiNone}, 1, 1)
	b := model.GetOrCreate(catalog.KindActivation, catalog.Attrs{ActiMode: catalog.ActiRelu}, 1, 1)
	require.NoError(t, g.AddEdge(a, 0, b, 0))
	// a -> b -> c -> a: a 3-cycle. AddEdge accepts every edge, since it
	// does not check for cycles; only TopoOrder detects it.
	c := model.GetOrCreate(catalog.KindElementAdd, catalog.Attrs{}, 2, 1)
	require.NoError(t, g.AddEdge(b, 0, c, 0))
	require.NoError(t, g.AddEdge(c, 0, a, 0))

	_, err := g.TopoOrder()
	assert.ErrorIs(t, err, dag.ErrCycle)
}
