package modelzoo

import (
	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/dag"
)

// ResidualBlock is a toy two-convolution residual block: two 3x3
// convolutions (the first with a fused relu, the second without) followed
// by an element-wise add of the block input, the same bypass-add idiom
// FireBlock uses for its own shortcut path.
func ResidualBlock(b dag.Builder, input dag.Tensor, channels int64) (dag.Tensor, error) {
	t, err := b.Conv2D(input, channels, 3, 3, 1, 1, 1, 1, true)
	if err != nil {
		return dag.Tensor{}, err
	}
	t, err = b.Conv2D(t, channels, 3, 3, 1, 1, 1, 1, false)
	if err != nil {
		return dag.Tensor{}, err
	}

	bypass := input
	if input.Dims[1] != channels {
		bypass, err = b.Conv2D(input, channels, 1, 1, 1, 1, 0, 0, false)
		if err != nil {
			return dag.Tensor{}, err
		}
	}

	sum, err := b.ElementAdd(t, bypass)
	if err != nil {
		return dag.Tensor{}, err
	}
	return b.Activation(sum, catalog.ActiRelu)
}

// ToyResNet builds a small stack of ResidualBlocks over a 56x56x64 input,
// enough to exercise search.Run without SqueezeNetComplex's full depth.
func ToyResNet(b dag.Builder) (dag.Tensor, error) {
	t, err := b.NoOp([]int64{1, 64, 56, 56})
	if err != nil {
		return dag.Tensor{}, err
	}
	for i := 0; i < 3; i++ {
		if t, err = ResidualBlock(b, t, 64); err != nil {
			return dag.Tensor{}, err
		}
	}
	t, err = b.Conv2D(t, 128, 3, 3, 2, 2, 1, 1, true)
	if err != nil {
		return dag.Tensor{}, err
	}
	for i := 0; i < 3; i++ {
		if t, err = ResidualBlock(b, t, 128); err != nil {
			return dag.Tensor{}, err
		}
	}
	return b.Pool2DAvg(t, 7, 7, 1, 1, 0, 0)
}
