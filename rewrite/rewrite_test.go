package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/dag"
	"github.com/graphforge/xflow/match"
	"github.com/graphforge/xflow/rewrite"
	"github.com/graphforge/xflow/xfer"
)

// fuseConvRelu builds the Xfer "Conv2D -> Activation(Relu) => ConvRelu"
// used throughout this file.
func fuseConvRelu(t *testing.T) *xfer.Xfer {
	t.Helper()
	b := xfer.NewBuilder("fuse-conv-relu")
	conv := b.AddSrcOp(catalog.KindConv2D)
	act := b.AddSrcOp(catalog.KindActivation,
		xfer.OneOpConstraint{Param: catalog.ParamActiMode, Cmp: xfer.CompareEQ, Value: int64(catalog.ActiRelu)},
	)
	b.AddSrcEdge(conv, 0, act, 0)

	fused := &xfer.DstOp{
		Kind: catalog.KindConvRelu,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			src := binding[conv]
			attrs := src.Attrs
			attrs.ActiMode = catalog.ActiRelu
			return model.GetOrCreate(catalog.KindConvRelu, attrs, 1, 1), nil
		},
	}
	b.AddDstOp(fused)

	b.MapInput(conv, fused)
	b.MapOutput(act, fused)

	x, err := b.Build()
	require.NoError(t, err)
	return x
}

func buildConvReluGraph(t *testing.T) (*catalog.Model, *dag.Graph) {
	t.Helper()
	model := catalog.NewModel()
	g := dag.NewGraph(model)

	in, err := g.NoOp([]int64{1, 3, 32, 32})
	require.NoError(t, err)
	conv, err := g.Conv2D(in, 16, 3, 3, 1, 1, 1, 1, false)
	require.NoError(t, err)
	act, err := g.Activation(conv, catalog.ActiRelu)
	require.NoError(t, err)
	// external consumer of the activation's output, so the boundary
	// output rewiring has something to reattach.
	_, err = g.Activation(act, catalog.ActiNone)
	require.NoError(t, err)

	return model, g
}

func TestRewrite_FuseConvRelu(t *testing.T) {
	x := fuseConvRelu(t)
	model, g := buildConvReluGraph(t)

	bindings := match.FindAll(x, g)
	require.Len(t, bindings, 1)

	child, err := rewrite.Rewrite(x, model, g, bindings[0])
	require.NoError(t, err)

	// Conv2D and the standalone Relu Activation are both gone; ConvRelu
	// and the downstream consumer remain, for a net node count of 3.
	assert.Equal(t, 3, child.NodeCount())

	order, err := child.TopoOrder()
	require.NoError(t, err)
	var sawFused, sawConv, sawRelu bool
	for _, op := range order {
		switch op.Kind {
		case catalog.KindConvRelu:
			sawFused = true
		case catalog.KindConv2D:
			sawConv = true
		case catalog.KindActivation:
			if v, ok := op.Param(catalog.ParamActiMode); ok && v == int64(catalog.ActiRelu) {
				sawRelu = true
			}
		}
	}
	assert.True(t, sawFused)
	assert.False(t, sawConv)
	assert.False(t, sawRelu)

	// the original parent graph must be untouched: rewrite derives a new
	// child Graph rather than mutating in place.
	assert.Equal(t, 4, g.NodeCount())
}

func TestRewrite_RejectsCycle(t *testing.T) {
	// A malformed Xfer whose destination internal edges wire two DstOps
	// into a 2-cycle (d1 -> d2 -> d1) must be rejected regardless of the
	// external boundary, since the cycle already exists before rewiring.
	b := xfer.NewBuilder("bad-xfer")
	n := b.AddSrcOp(catalog.KindActivation)

	d1 := &xfer.DstOp{
		Kind: catalog.KindElementAdd,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			return model.GetOrCreate(catalog.KindElementAdd, catalog.Attrs{}, 2, 1), nil
		},
	}
	d2 := &xfer.DstOp{
		Kind: catalog.KindActivation,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			return model.GetOrCreate(catalog.KindActivation, catalog.Attrs{}, 1, 1), nil
		},
	}
	b.AddDstOp(d1)
	b.AddDstOp(d2)
	b.AddDstEdge(d1, 0, d2, 0)
	b.AddDstEdge(d2, 0, d1, 1)

	b.MapInput(n, d1)
	b.MapOutput(n, d2)
	x, err := b.Build()
	require.NoError(t, err)

	model := catalog.NewModel()
	g := dag.NewGraph(model)
	in, err := g.NoOp([]int64{1, 3, 8, 8})
	require.NoError(t, err)
	act, err := g.Activation(in, catalog.ActiNone)
	require.NoError(t, err)
	_, err = g.Pool2DMax(act, 2, 2, 2, 2, 0, 0)
	require.NoError(t, err)

	bindings := match.FindAll(x, g)
	require.Len(t, bindings, 1)

	_, err = rewrite.Rewrite(x, model, g, bindings[0])
	assert.ErrorIs(t, err, rewrite.ErrCyclicRewrite)
}
