package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/dag"
	"github.com/graphforge/xflow/match"
	"github.com/graphforge/xflow/xfer"
)

func fuseConvReluXfer() *xfer.Xfer {
	b := xfer.NewBuilder("fuse-conv-relu")
	conv := b.AddSrcOp(catalog.KindConv2D)
	act := b.AddSrcOp(catalog.KindActivation,
		xfer.OneOpConstraint{Param: catalog.ParamActiMode, Cmp: xfer.CompareEQ, Value: int64(catalog.ActiRelu)},
	)
	b.AddSrcEdge(conv, 0, act, 0)

	fused := &xfer.DstOp{
		Kind: catalog.KindConvRelu,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			attrs := binding[conv].Attrs
			attrs.ActiMode = catalog.ActiRelu
			return model.GetOrCreate(catalog.KindConvRelu, attrs, 1, 1), nil
		},
	}
	b.AddDstOp(fused)
	b.MapInput(conv, fused)
	b.MapOutput(act, fused)

	x, err := b.Build()
	if err != nil {
		panic(err)
	}
	return x
}

func TestFindAll_MatchesSinglePattern(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	conv, err := g.Conv2D(in, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)
	_, err = g.Activation(conv, catalog.ActiRelu)
	require.NoError(t, err)

	bindings := match.FindAll(fuseConvReluXfer(), g)
	require.Len(t, bindings, 1)
}

func TestFindAll_RejectsWrongActiMode(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	conv, err := g.Conv2D(in, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)
	_, err = g.Activation(conv, catalog.ActiSigmoid)
	require.NoError(t, err)

	bindings := match.FindAll(fuseConvReluXfer(), g)
	assert.Empty(t, bindings)
}

func TestFindAll_RejectsLeakedExternalEdge(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	conv, err := g.Conv2D(in, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)
	act, err := g.Activation(conv, catalog.ActiRelu)
	require.NoError(t, err)
	_, err = g.Pool2DMax(act, 2, 2, 2, 2, 0, 0)
	require.NoError(t, err)

	// Conv2D's output also feeds a second consumer directly, bypassing the
	// matched Activation: the Conv2D node has no mapOutput in this Xfer
	// (only the Activation does), so this extra edge must be rejected.
	_, err = g.Pool2DAvg(conv, 2, 2, 2, 2, 0, 0)
	require.NoError(t, err)

	bindings := match.FindAll(fuseConvReluXfer(), g)
	assert.Empty(t, bindings)
}

func TestFindAll_NoMatchOnEmptyGraph(t *testing.T) {
	model := catalog.NewModel()
	g := dag.NewGraph(model)
	bindings := match.FindAll(fuseConvReluXfer(), g)
	assert.Empty(t, bindings)
}

func TestFindAll_TwoOpConstraint(t *testing.T) {
	b := xfer.NewBuilder("same-kernel-convs")
	c1 := b.AddSrcOp(catalog.KindConv2D)
	c2 := b.AddSrcOp(catalog.KindConv2D)
	b.AddTwoOpConstraint(xfer.TwoOpConstraint{A: c1, B: c2, ParamA: catalog.ParamKernelH, ParamB: catalog.ParamKernelH, Cmp: xfer.CompareEQ})
	b.AddDstOp(&xfer.DstOp{
		Kind: catalog.KindConv2D,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			return model.GetOrCreate(catalog.KindConv2D, binding[c1].Attrs, 1, 1), nil
		},
	})
	x, err := b.Build()
	require.NoError(t, err)

	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	_, err = g.Conv2D(in, 4, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)
	_, err = g.Conv2D(in, 4, 5, 5, 1, 1, 2, 2, false)
	require.NoError(t, err)

	bindings := match.FindAll(x, g)
	assert.Empty(t, bindings, "the only two Conv2D nodes have different kernel sizes")
}
