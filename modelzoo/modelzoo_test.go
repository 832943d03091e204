package modelzoo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/dag"
	"github.com/graphforge/xflow/modelzoo"
)

func TestFireBlock_ChannelMatch(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 128, 28, 28})
	require.NoError(t, err)

	out, err := modelzoo.FireBlock(g, in, 16, 64)
	require.NoError(t, err)
	assert.Equal(t, int64(128), out.Dims[1])

	_, err = g.TopoOrder()
	assert.NoError(t, err)
}

func TestSqueezeNetComplex_Builds(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)

	out, err := modelzoo.SqueezeNetComplex(g)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), out.Dims[1])

	order, err := g.TopoOrder()
	require.NoError(t, err)
	assert.Equal(t, g.NodeCount(), len(order))
}

func TestRegistry_HasStockModels(t *testing.T) {
	reg := modelzoo.Registry()
	require.Contains(t, reg, "squeezenet")
	require.Contains(t, reg, "resnet-toy")

	g := dag.NewGraph(catalog.NewModel())
	_, err := reg["resnet-toy"](g)
	assert.NoError(t, err)
}

func TestToyResNet_Builds(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)

	out, err := modelzoo.ToyResNet(g)
	require.NoError(t, err)
	assert.Equal(t, int64(128), out.Dims[1])

	order, err := g.TopoOrder()
	require.NoError(t, err)
	assert.Equal(t, g.NodeCount(), len(order))
}
