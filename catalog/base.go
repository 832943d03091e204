package catalog

import "sync"

// Base is the canonical, interned record shared by every graph node that
// has the same (kind, attrs) key: its shape/hyperparameter attributes,
// fixed arity, and a lazily-filled measured runtime. Base is what
// Model.GetOrCreate interns — the per-node identity (guid) lives on Op,
// one layer up, since two distinct DAG nodes may legitimately compute the
// same (kind, attrs) and so share one Base while remaining distinct nodes.
//
// Base is immutable except for the one-time runtime fill performed by
// SetRuntime.
type Base struct {
	Kind       Kind
	Attrs      Attrs
	NumInputs  int
	NumOutputs int

	mu       sync.RWMutex
	measured bool
	runtime  float64
}

// Param looks up a single named parameter on this operator by ParamID,
// uniformly across kinds. Unsupported (kind, param) combinations return
// (0, false).
func (b *Base) Param(id ParamID) (int64, bool) {
	switch id {
	case ParamOpType:
		return int64(b.Kind), true
	case ParamNumInputs:
		return int64(b.NumInputs), true
	case ParamNumOutputs:
		return int64(b.NumOutputs), true
	}

	switch b.Kind {
	case KindConv2D, KindConvBatch, KindConvRelu:
		switch id {
		case ParamKernelH:
			return b.Attrs.KernelH, true
		case ParamKernelW:
			return b.Attrs.KernelW, true
		case ParamStrideH:
			return b.Attrs.StrideH, true
		case ParamStrideW:
			return b.Attrs.StrideW, true
		case ParamPadH:
			return b.Attrs.PadH, true
		case ParamPadW:
			return b.Attrs.PadW, true
		case ParamOutputChannels:
			return b.Attrs.OutputChannels, true
		case ParamActiMode:
			if b.Kind == KindConvRelu {
				return int64(b.Attrs.ActiMode), true
			}
			return 0, false
		}
	case KindPool2DMax, KindPool2DAvg:
		switch id {
		case ParamKernelH:
			return b.Attrs.KernelH, true
		case ParamKernelW:
			return b.Attrs.KernelW, true
		case ParamStrideH:
			return b.Attrs.StrideH, true
		case ParamStrideW:
			return b.Attrs.StrideW, true
		case ParamPadH:
			return b.Attrs.PadH, true
		case ParamPadW:
			return b.Attrs.PadW, true
		}
	case KindMatmul, KindMatmulActivation:
		switch id {
		case ParamOutputChannels:
			return b.Attrs.OutputChannels, true
		case ParamActiMode:
			return int64(b.Attrs.ActiMode), true
		}
	case KindActivation:
		if id == ParamActiMode {
			return int64(b.Attrs.ActiMode), true
		}
	case KindBatchNorm:
		if id == ParamOutputChannels {
			return b.Attrs.OutputChannels, true
		}
	}

	return 0, false
}

// Runtime returns the measured runtime in milliseconds and whether it has
// been filled yet.
func (b *Base) Runtime() (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.runtime, b.measured
}

// SetRuntime fills the runtime cache. Safe to call more than once; later
// writers win, which only matters for the CostOracle's own memoization
// policy since a given (kind, attrs) key is expected to always measure the
// same value.
func (b *Base) SetRuntime(ms float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runtime = ms
	b.measured = true
}

// FixedArity returns the fixed (numInputs, numOutputs) for kinds whose
// arity is not a function of the specific instance. Concat and Split are
// variable-arity; FixedArity returns fixed=false for them, since their
// arity is only known once an instance is constructed.
func FixedArity(k Kind) (in, out int, fixed bool) {
	return defaultArity(k)
}

// defaultArity returns the fixed (numInputs, numOutputs) for kinds whose
// arity is not a function of the specific instance. Concat and Split are
// variable-arity and are supplied explicitly by the caller of GetOrCreate.
func defaultArity(k Kind) (in, out int, fixed bool) {
	switch k {
	case KindConv2D, KindConvBatch, KindConvRelu,
		KindMatmul, KindMatmulActivation,
		KindPool2DMax, KindPool2DAvg,
		KindActivation, KindBatchNorm, KindIdentity:
		return 1, 1, true
	case KindNoOp:
		return 0, 1, true
	case KindElementAdd:
		return 2, 1, true
	default:
		return 0, 0, false
	}
}
