package xferlib

import (
	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/xfer"
)

// FuseConvRelu returns the "Conv2D -> Activation(Relu) => ConvRelu"
// substitution.
func FuseConvRelu() *xfer.Xfer {
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
		panic("xferlib: FuseConvRelu: " + err.Error())
	}
	return x
}

// FuseConvBatchNorm returns the "Conv2D -> BatchNorm => ConvBatch"
// substitution.
func FuseConvBatchNorm() *xfer.Xfer {
	b := xfer.NewBuilder("fuse-conv-batchnorm")
	conv := b.AddSrcOp(catalog.KindConv2D)
	bn := b.AddSrcOp(catalog.KindBatchNorm)
	b.AddSrcEdge(conv, 0, bn, 0)

	fused := &xfer.DstOp{
		Kind: catalog.KindConvBatch,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			return model.GetOrCreate(catalog.KindConvBatch, binding[conv].Attrs, 1, 1), nil
		},
	}
	b.AddDstOp(fused)
	b.MapInput(conv, fused)
	b.MapOutput(bn, fused)

	x, err := b.Build()
	if err != nil {
		panic("xferlib: FuseConvBatchNorm: " + err.Error())
	}
	return x
}

// FuseMatmulActivation returns the "Matmul -> Activation(!= None) =>
// MatmulActivation" substitution.
func FuseMatmulActivation() *xfer.Xfer {
	b := xfer.NewBuilder("fuse-matmul-activation")
	mm := b.AddSrcOp(catalog.KindMatmul)
	act := b.AddSrcOp(catalog.KindActivation,
		xfer.OneOpConstraint{Param: catalog.ParamActiMode, Cmp: xfer.CompareNE, Value: int64(catalog.ActiNone)},
	)
	b.AddSrcEdge(mm, 0, act, 0)

	fused := &xfer.DstOp{
		Kind: catalog.KindMatmulActivation,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			attrs := binding[mm].Attrs
			mode, _ := binding[act].Param(catalog.ParamActiMode)
			attrs.ActiMode = catalog.ActiMode(mode)
			return model.GetOrCreate(catalog.KindMatmulActivation, attrs, 1, 1), nil
		},
	}
	b.AddDstOp(fused)
	b.MapInput(mm, fused)
	b.MapOutput(act, fused)

	x, err := b.Build()
	if err != nil {
		panic("xferlib: FuseMatmulActivation: " + err.Error())
	}
	return x
}

// EnlargeConvKernel returns a substitution widening a Conv2D with the
// given exact kernel size to toKernel, holding stride fixed and adjusting
// padding to preserve output spatial dimensions ((toKernel-1)/2). Distinct
// instances for distinct (fromKernel, toKernel) pairs are independent
// Xfers; a single parametric one can't express a fixed-shape one-op
// constraint value at construction time.
func EnlargeConvKernel(fromKernel, toKernel int64) *xfer.Xfer {
	b := xfer.NewBuilder("enlarge-conv-kernel")
	conv := b.AddSrcOp(catalog.KindConv2D,
		xfer.OneOpConstraint{Param: catalog.ParamKernelH, Cmp: xfer.CompareEQ, Value: fromKernel},
		xfer.OneOpConstraint{Param: catalog.ParamKernelW, Cmp: xfer.CompareEQ, Value: fromKernel},
	)

	enlarged := &xfer.DstOp{
		Kind: catalog.KindConv2D,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			attrs := binding[conv].Attrs
			attrs.KernelH, attrs.KernelW = toKernel, toKernel
			attrs.PadH, attrs.PadW = (toKernel-1)/2, (toKernel-1)/2
			return model.GetOrCreate(catalog.KindConv2D, attrs, 1, 1), nil
		},
	}
	b.AddDstOp(enlarged)
	b.MapInput(conv, enlarged)
	b.MapOutput(conv, enlarged)

	x, err := b.Build()
	if err != nil {
		panic("xferlib: EnlargeConvKernel: " + err.Error())
	}
	return x
}

// SplitConcatElision returns the substitution recognizing a 2-way Split
// immediately reassembled by a matching 2-input Concat as a structural
// no-op, collapsing both to a single Identity node. A fixed arity of 2 is
// chosen because Xfer source patterns are fixed-shape; wider splits need a
// separately-constructed instance of this same pattern shape.
func SplitConcatElision() *xfer.Xfer {
	b := xfer.NewBuilder("split-concat-elision")
	split := b.AddSrcOp(catalog.KindSplit,
		xfer.OneOpConstraint{Param: catalog.ParamNumOutputs, Cmp: xfer.CompareEQ, Value: 2},
	)
	concat := b.AddSrcOp(catalog.KindConcat,
		xfer.OneOpConstraint{Param: catalog.ParamNumInputs, Cmp: xfer.CompareEQ, Value: 2},
	)
	b.AddSrcEdge(split, 0, concat, 0)
	b.AddSrcEdge(split, 1, concat, 1)

	identity := &xfer.DstOp{
		Kind: catalog.KindIdentity,
		Build: func(binding xfer.Binding, model *catalog.Model) (*catalog.Op, error) {
			return model.GetOrCreate(catalog.KindIdentity, catalog.Attrs{}, 1, 1), nil
		},
	}
	b.AddDstOp(identity)
	b.MapInput(split, identity)
	b.MapOutput(concat, identity)

	x, err := b.Build()
	if err != nil {
		panic("xferlib: SplitConcatElision: " + err.Error())
	}
	return x
}

// Default returns the standard library of substitutions this module
// wires into search.Run by default.
func Default() []*xfer.Xfer {
	return []*xfer.Xfer{
		FuseConvBatchNorm(),
		FuseMatmulActivation(),
		FuseConvRelu(),
		SplitConcatElision(),
	}
}
