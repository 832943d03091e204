package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/xflow/catalog"
)

func TestGetOrCreate_InternsSharedBase(t *testing.T) {
	model := catalog.NewModel()
	attrs := catalog.Attrs{OutputChannels: 8, KernelH: 3, KernelW: 3, StrideH: 1, StrideW: 1, PadH: 1, PadW: 1}

	a := model.GetOrCreate(catalog.KindConv2D, attrs, 1, 1)
	b := model.GetOrCreate(catalog.KindConv2D, attrs, 1, 1)

	assert.Same(t, a.Base, b.Base)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 1, model.Size())
}

func TestGetOrCreate_DistinctAttrsDistinctBase(t *testing.T) {
	model := catalog.NewModel()
	a := model.GetOrCreate(catalog.KindConv2D, catalog.Attrs{OutputChannels: 8}, 1, 1)
	b := model.GetOrCreate(catalog.KindConv2D, catalog.Attrs{OutputChannels: 16}, 1, 1)

	assert.NotSame(t, a.Base, b.Base)
	assert.Equal(t, 2, model.Size())
}

func TestGetOrCreate_FixedArityOverridesCaller(t *testing.T) {
	model := catalog.NewModel()
	op := model.GetOrCreate(catalog.KindConv2D, catalog.Attrs{}, 5, 5)
	assert.Equal(t, 1, op.NumInputs)
	assert.Equal(t, 1, op.NumOutputs)
}

func TestGetOrCreate_VariableAritySplit(t *testing.T) {
	model := catalog.NewModel()
	op := model.GetOrCreate(catalog.KindSplit, catalog.Attrs{SplitSizes: []int64{4, 4, 8}}, 1, 3)
	assert.Equal(t, 3, op.NumOutputs)

	other := model.GetOrCreate(catalog.KindSplit, catalog.Attrs{SplitSizes: []int64{4, 4, 8}}, 1, 2)
	assert.NotSame(t, op.Base, other.Base, "arity participates in the intern key")
}

func TestParam_KnownAndUnknown(t *testing.T) {
	model := catalog.NewModel()
	op := model.GetOrCreate(catalog.KindConv2D, catalog.Attrs{KernelH: 3, KernelW: 5, OutputChannels: 16}, 1, 1)

	v, ok := op.Param(catalog.ParamKernelH)
	require.True(t, ok)
	assert.Equal(t, int64(3), v)

	v, ok = op.Param(catalog.ParamOutputChannels)
	require.True(t, ok)
	assert.Equal(t, int64(16), v)

	_, ok = op.Param(catalog.ParamActiMode)
	assert.False(t, ok, "Conv2D (not ConvRelu) carries no ActiMode")

	poolOp := model.GetOrCreate(catalog.KindPool2DMax, catalog.Attrs{KernelH: 2}, 1, 1)
	_, ok = poolOp.Param(catalog.ParamOutputChannels)
	assert.False(t, ok, "Pool2DMax carries no OutputChannels")
}

func TestParam_BatchNormAndIdentity(t *testing.T) {
	model := catalog.NewModel()
	bn := model.GetOrCreate(catalog.KindBatchNorm, catalog.Attrs{OutputChannels: 32}, 1, 1)
	v, ok := bn.Param(catalog.ParamOutputChannels)
	require.True(t, ok)
	assert.Equal(t, int64(32), v)

	id := model.GetOrCreate(catalog.KindIdentity, catalog.Attrs{}, 1, 1)
	assert.Equal(t, 1, id.NumInputs)
	assert.Equal(t, 1, id.NumOutputs)
}

func TestSetRuntime_Runtime(t *testing.T) {
	model := catalog.NewModel()
	op := model.GetOrCreate(catalog.KindActivation, catalog.Attrs{}, 1, 1)

	_, ok := op.Runtime()
	assert.False(t, ok)

	op.SetRuntime(4.5)
	ms, ok := op.Runtime()
	require.True(t, ok)
	assert.Equal(t, 4.5, ms)
}

func TestLookupBase(t *testing.T) {
	model := catalog.NewModel()
	attrs := catalog.Attrs{OutputChannels: 4}

	_, ok := model.LookupBase(catalog.KindMatmul, attrs, 1, 1)
	assert.False(t, ok)

	model.GetOrCreate(catalog.KindMatmul, attrs, 1, 1)
	_, ok = model.LookupBase(catalog.KindMatmul, attrs, 1, 1)
	assert.True(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Conv2D", catalog.KindConv2D.String())
	assert.Equal(t, "BatchNorm", catalog.KindBatchNorm.String())
	assert.Equal(t, "Identity", catalog.KindIdentity.String())
	assert.Equal(t, "Invalid", catalog.KindInvalid.String())
}
