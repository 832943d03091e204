package dag

import (
	"errors"
	"fmt"

	"github.com/graphforge/xflow/catalog"
)

// ErrBadDims indicates a Builder call received a tensor with an
// unsupported number of dimensions (3 or 4) or dimensions that don't line
// up for the requested operator.
var ErrBadDims = errors.New("dag: bad tensor dimensions")

// Tensor is the immutable output-port descriptor: number of dimensions,
// per-dimension sizes, the producing operator, and its output port index.
// Two Tensors are equal iff every field matches.
type Tensor struct {
	Op   *catalog.Op
	Port int
	Dims []int64
}

// Equal reports field-by-field equality.
func (t Tensor) Equal(o Tensor) bool {
	if t.Op != o.Op || t.Port != o.Port || len(t.Dims) != len(o.Dims) {
		return false
	}
	for i := range t.Dims {
		if t.Dims[i] != o.Dims[i] {
			return false
		}
	}
	return true
}

// Builder is the graph construction surface external, model-specific
// constructors (ResNet, SqueezeNet, ...) are expected to use when
// assembling an initial Graph. *Graph implements it directly.
type Builder interface {
	NoOp(dims []int64) (Tensor, error)
	Conv2D(input Tensor, outputChannels, kernelH, kernelW, strideH, strideW, padH, padW int64, relu bool) (Tensor, error)
	Matmul(input Tensor, outputChannels int64, acti catalog.ActiMode) (Tensor, error)
	Pool2DMax(input Tensor, kernelH, kernelW, strideH, strideW, padH, padW int64) (Tensor, error)
	Pool2DAvg(input Tensor, kernelH, kernelW, strideH, strideW, padH, padW int64) (Tensor, error)
	Concat(axis int, inputs []Tensor) (Tensor, error)
	Split(input Tensor, sizes []int64) ([]Tensor, error)
	ElementAdd(a, b Tensor) (Tensor, error)
	Activation(input Tensor, mode catalog.ActiMode) (Tensor, error)
}

var _ Builder = (*Graph)(nil)

// NoOp introduces an external input of the given dimensions as a
// zero-input source node, wrapping the externally-supplied tensor so it
// has a producing node in the graph like everything else.
func (g *Graph) NoOp(dims []int64) (Tensor, error) {
	if len(dims) != 3 && len(dims) != 4 {
		return Tensor{}, fmt.Errorf("dag: NoOp: %w", ErrBadDims)
	}
	op := g.model.GetOrCreate(catalog.KindNoOp, catalog.Attrs{}, 0, 1)
	if err := g.AddNode(op); err != nil {
		return Tensor{}, err
	}

	return Tensor{Op: op, Port: 0, Dims: append([]int64(nil), dims...)}, nil
}

// Conv2D adds a Conv2D node (or its fused ConvRelu variant when relu is
// set) consuming input, and wires the single-producer input edge.
func (g *Graph) Conv2D(input Tensor, outputChannels, kernelH, kernelW, strideH, strideW, padH, padW int64, relu bool) (Tensor, error) {
	if len(input.Dims) != 4 {
		return Tensor{}, fmt.Errorf("dag: Conv2D: %w", ErrBadDims)
	}
	attrs := catalog.Attrs{
		OutputChannels: outputChannels,
		KernelH:        kernelH,
		KernelW:        kernelW,
		StrideH:        strideH,
		StrideW:        strideW,
		PadH:           padH,
		PadW:           padW,
	}
	kind := catalog.KindConv2D
	if relu {
		kind = catalog.KindConvRelu
		attrs.ActiMode = catalog.ActiRelu
	}
	op := g.model.GetOrCreate(kind, attrs, 1, 1)
	if err := g.AddEdge(input.Op, input.Port, op, 0); err != nil {
		return Tensor{}, err
	}
	outH := convOutDim(input.Dims[2], kernelH, strideH, padH)
	outW := convOutDim(input.Dims[3], kernelW, strideW, padW)

	return Tensor{Op: op, Port: 0, Dims: []int64{input.Dims[0], outputChannels, outH, outW}}, nil
}

// Matmul adds a Matmul node (or its fused MatmulActivation variant when
// acti != ActiNone) consuming a 3-dim (batch, rows, channels) input
// tensor.
func (g *Graph) Matmul(input Tensor, outputChannels int64, acti catalog.ActiMode) (Tensor, error) {
	if len(input.Dims) != 3 {
		return Tensor{}, fmt.Errorf("dag: Matmul: %w", ErrBadDims)
	}
	attrs := catalog.Attrs{OutputChannels: outputChannels, ActiMode: acti}
	kind := catalog.KindMatmul
	if acti != catalog.ActiNone {
		kind = catalog.KindMatmulActivation
	}
	op := g.model.GetOrCreate(kind, attrs, 1, 1)
	if err := g.AddEdge(input.Op, input.Port, op, 0); err != nil {
		return Tensor{}, err
	}

	return Tensor{Op: op, Port: 0, Dims: []int64{input.Dims[0], input.Dims[1], outputChannels}}, nil
}

// Pool2DMax adds a Pool2DMax node, preserving input channel count.
func (g *Graph) Pool2DMax(input Tensor, kernelH, kernelW, strideH, strideW, padH, padW int64) (Tensor, error) {
	return g.pool2d(catalog.KindPool2DMax, input, kernelH, kernelW, strideH, strideW, padH, padW)
}

// Pool2DAvg adds a Pool2DAvg node, preserving input channel count.
func (g *Graph) Pool2DAvg(input Tensor, kernelH, kernelW, strideH, strideW, padH, padW int64) (Tensor, error) {
	return g.pool2d(catalog.KindPool2DAvg, input, kernelH, kernelW, strideH, strideW, padH, padW)
}

func (g *Graph) pool2d(kind catalog.Kind, input Tensor, kernelH, kernelW, strideH, strideW, padH, padW int64) (Tensor, error) {
	if len(input.Dims) != 4 {
		return Tensor{}, fmt.Errorf("dag: pool2d: %w", ErrBadDims)
	}
	attrs := catalog.Attrs{KernelH: kernelH, KernelW: kernelW, StrideH: strideH, StrideW: strideW, PadH: padH, PadW: padW}
	op := g.model.GetOrCreate(kind, attrs, 1, 1)
	if err := g.AddEdge(input.Op, input.Port, op, 0); err != nil {
		return Tensor{}, err
	}
	outH := convOutDim(input.Dims[2], kernelH, strideH, padH)
	outW := convOutDim(input.Dims[3], kernelW, strideW, padW)

	return Tensor{Op: op, Port: 0, Dims: []int64{input.Dims[0], input.Dims[1], outH, outW}}, nil
}

// Concat adds a Concat node joining len(inputs) producers along axis.
func (g *Graph) Concat(axis int, inputs []Tensor) (Tensor, error) {
	if len(inputs) < 2 {
		return Tensor{}, fmt.Errorf("dag: Concat: %w", ErrBadDims)
	}
	op := g.model.GetOrCreate(catalog.KindConcat, catalog.Attrs{}, len(inputs), 1)
	for i, t := range inputs {
		if err := g.AddEdge(t.Op, t.Port, op, i); err != nil {
			return Tensor{}, err
		}
	}
	dims := append([]int64(nil), inputs[0].Dims...)
	if axis < 0 || axis >= len(dims) {
		return Tensor{}, fmt.Errorf("dag: Concat: %w", ErrBadDims)
	}
	var sum int64
	for _, t := range inputs {
		if len(t.Dims) != len(dims) {
			return Tensor{}, fmt.Errorf("dag: Concat: %w", ErrBadDims)
		}
		sum += t.Dims[axis]
	}
	dims[axis] = sum

	return Tensor{Op: op, Port: 0, Dims: dims}, nil
}

// Split adds a Split node producing len(sizes) outputs from input, each
// carrying sizes[i] channels.
func (g *Graph) Split(input Tensor, sizes []int64) ([]Tensor, error) {
	if len(sizes) < 2 || len(input.Dims) < 2 {
		return nil, fmt.Errorf("dag: Split: %w", ErrBadDims)
	}
	op := g.model.GetOrCreate(catalog.KindSplit, catalog.Attrs{SplitSizes: append([]int64(nil), sizes...)}, 1, len(sizes))
	if err := g.AddEdge(input.Op, input.Port, op, 0); err != nil {
		return nil, err
	}
	outs := make([]Tensor, len(sizes))
	for i, sz := range sizes {
		dims := append([]int64(nil), input.Dims...)
		dims[1] = sz
		outs[i] = Tensor{Op: op, Port: i, Dims: dims}
	}

	return outs, nil
}

// ElementAdd adds an ElementAdd node summing two same-shaped tensors.
func (g *Graph) ElementAdd(a, b Tensor) (Tensor, error) {
	op := g.model.GetOrCreate(catalog.KindElementAdd, catalog.Attrs{}, 2, 1)
	if err := g.AddEdge(a.Op, a.Port, op, 0); err != nil {
		return Tensor{}, err
	}
	if err := g.AddEdge(b.Op, b.Port, op, 1); err != nil {
		return Tensor{}, err
	}

	return Tensor{Op: op, Port: 0, Dims: append([]int64(nil), a.Dims...)}, nil
}

// Activation adds a standalone Activation node.
func (g *Graph) Activation(input Tensor, mode catalog.ActiMode) (Tensor, error) {
	op := g.model.GetOrCreate(catalog.KindActivation, catalog.Attrs{ActiMode: mode}, 1, 1)
	if err := g.AddEdge(input.Op, input.Port, op, 0); err != nil {
		return Tensor{}, err
	}

	return Tensor{Op: op, Port: 0, Dims: append([]int64(nil), input.Dims...)}, nil
}

// BatchNorm adds a standalone BatchNorm node, preserving input shape. Not
// part of the Builder interface, since external model constructors never
// call it directly; it exists so xferlib's
// fuse-conv-batchnorm substitution has a source-pattern node to match
// against hand-built test graphs.
func (g *Graph) BatchNorm(input Tensor) (Tensor, error) {
	op := g.model.GetOrCreate(catalog.KindBatchNorm, catalog.Attrs{OutputChannels: input.Dims[1]}, 1, 1)
	if err := g.AddEdge(input.Op, input.Port, op, 0); err != nil {
		return Tensor{}, err
	}

	return Tensor{Op: op, Port: 0, Dims: append([]int64(nil), input.Dims...)}, nil
}

func convOutDim(in, kernel, stride, pad int64) int64 {
	return (in+2*pad-kernel)/stride + 1
}
