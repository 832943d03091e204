package catalog

// Kind is the closed tag of an operator. New kinds are added here and
// nowhere else; Param's switch statements must be extended in lockstep.
type Kind int

const (
	// KindInvalid is the zero value; never a valid operator kind.
	KindInvalid Kind = iota
	KindConv2D
	KindMatmul
	KindPool2DMax
	KindPool2DAvg
	KindConcat
	KindSplit
	KindElementAdd
	KindActivation
	KindNoOp
	KindBatchNorm
	KindIdentity

	// Fused variants produced by Xfer rewrites.
	KindConvBatch
	KindConvRelu
	KindMatmulActivation
)

// String renders the kind for diagnostics and export.
func (k Kind) String() string {
	switch k {
	case KindConv2D:
		return "Conv2D"
	case KindMatmul:
		return "Matmul"
	case KindPool2DMax:
		return "Pool2DMax"
	case KindPool2DAvg:
		return "Pool2DAvg"
	case KindConcat:
		return "Concat"
	case KindSplit:
		return "Split"
	case KindElementAdd:
		return "ElementAdd"
	case KindActivation:
		return "Activation"
	case KindNoOp:
		return "NoOp"
	case KindBatchNorm:
		return "BatchNorm"
	case KindIdentity:
		return "Identity"
	case KindConvBatch:
		return "ConvBatch"
	case KindConvRelu:
		return "ConvRelu"
	case KindMatmulActivation:
		return "MatmulActivation"
	default:
		return "Invalid"
	}
}

// ActiMode is the closed set of fused activation modes.
type ActiMode int

const (
	ActiNone ActiMode = iota
	ActiRelu
	ActiSigmoid
	ActiTanh
)

func (a ActiMode) String() string {
	switch a {
	case ActiRelu:
		return "Relu"
	case ActiSigmoid:
		return "Sigmoid"
	case ActiTanh:
		return "Tanh"
	default:
		return "None"
	}
}

// ParamID enumerates the recognized parameter identifiers for Op.Param.
// Queries with an unrecognized ParamID, or a ParamID a given Kind does not
// carry, return (0, false).
type ParamID int

const (
	ParamOpType ParamID = iota
	ParamNumInputs
	ParamNumOutputs
	ParamKernelH
	ParamKernelW
	ParamStrideH
	ParamStrideW
	ParamPadH
	ParamPadW
	ParamActiMode
	ParamOutputChannels
)
