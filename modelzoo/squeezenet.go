package modelzoo

import "github.com/graphforge/xflow/dag"

// FireBlock is a squeeze-expand-bypass block: a 1x1 squeeze convolution
// feeding parallel 3x3 and 1x1 expand convolutions, concatenated along
// the channel axis, then added to a bypass path (the input itself when
// channel counts already match, otherwise a 1x1 projection of it).
func FireBlock(b dag.Builder, input dag.Tensor, squeeze, expand int64) (dag.Tensor, error) {
	t1, err := b.Conv2D(input, squeeze, 1, 1, 1, 1, 0, 0, true)
	if err != nil {
		return dag.Tensor{}, err
	}
	t1a, err := b.Conv2D(t1, expand, 3, 3, 1, 1, 1, 1, true)
	if err != nil {
		return dag.Tensor{}, err
	}
	t1b, err := b.Conv2D(t1, expand, 1, 1, 1, 1, 0, 0, true)
	if err != nil {
		return dag.Tensor{}, err
	}
	merged, err := b.Concat(1, []dag.Tensor{t1a, t1b})
	if err != nil {
		return dag.Tensor{}, err
	}

	bypass := input
	if input.Dims[1] != merged.Dims[1] {
		bypass, err = b.Conv2D(input, 2*expand, 1, 1, 1, 1, 0, 0, true)
		if err != nil {
			return dag.Tensor{}, err
		}
	}

	return b.ElementAdd(merged, bypass)
}

// SqueezeNetComplex builds the full SqueezeNet-with-complex-bypass graph,
// fixed at a 222x222x3 input.
func SqueezeNetComplex(b dag.Builder) (dag.Tensor, error) {
	t, err := b.NoOp([]int64{1, 3, 222, 222})
	if err != nil {
		return dag.Tensor{}, err
	}
	t, err = b.Conv2D(t, 96, 7, 7, 2, 2, 3, 3, true)
	if err != nil {
		return dag.Tensor{}, err
	}
	t, err = b.Pool2DMax(t, 3, 3, 2, 2, 0, 0)
	if err != nil {
		return dag.Tensor{}, err
	}

	fireSpecs := []struct{ squeeze, expand int64 }{
		{16, 64}, {16, 64}, {32, 128},
	}
	for _, s := range fireSpecs {
		if t, err = FireBlock(b, t, s.squeeze, s.expand); err != nil {
			return dag.Tensor{}, err
		}
	}
	if t, err = b.Pool2DMax(t, 3, 3, 2, 2, 0, 0); err != nil {
		return dag.Tensor{}, err
	}

	fireSpecs = []struct{ squeeze, expand int64 }{
		{32, 128}, {48, 192}, {48, 192}, {64, 256},
	}
	for _, s := range fireSpecs {
		if t, err = FireBlock(b, t, s.squeeze, s.expand); err != nil {
			return dag.Tensor{}, err
		}
	}
	if t, err = b.Pool2DMax(t, 3, 3, 2, 2, 0, 0); err != nil {
		return dag.Tensor{}, err
	}

	if t, err = FireBlock(b, t, 64, 256); err != nil {
		return dag.Tensor{}, err
	}
	if t, err = b.Conv2D(t, 1000, 1, 1, 1, 1, 0, 0, true); err != nil {
		return dag.Tensor{}, err
	}

	return b.Pool2DAvg(t, 13, 13, 1, 1, 0, 0)
}
