package graphio

import (
	"errors"
	"fmt"

	"github.com/graphforge/xflow/catalog"
)

// kindByName inverts catalog.Kind.String() for Import; catalog has no
// reverse lookup of its own since nothing internal to it needs one.
var kindByName = map[string]catalog.Kind{
	catalog.KindConv2D.String():           catalog.KindConv2D,
	catalog.KindMatmul.String():           catalog.KindMatmul,
	catalog.KindPool2DMax.String():        catalog.KindPool2DMax,
	catalog.KindPool2DAvg.String():        catalog.KindPool2DAvg,
	catalog.KindConcat.String():           catalog.KindConcat,
	catalog.KindSplit.String():            catalog.KindSplit,
	catalog.KindElementAdd.String():       catalog.KindElementAdd,
	catalog.KindActivation.String():       catalog.KindActivation,
	catalog.KindNoOp.String():             catalog.KindNoOp,
	catalog.KindBatchNorm.String():        catalog.KindBatchNorm,
	catalog.KindIdentity.String():         catalog.KindIdentity,
	catalog.KindConvBatch.String():        catalog.KindConvBatch,
	catalog.KindConvRelu.String():         catalog.KindConvRelu,
	catalog.KindMatmulActivation.String(): catalog.KindMatmulActivation,
}

// ErrUnknownKind indicates an imported document named a Kind this build
// of the catalog does not recognize.
var ErrUnknownKind = errors.New("graphio: unknown kind")

func parseKind(name string) (catalog.Kind, error) {
	k, ok := kindByName[name]
	if !ok {
		return catalog.KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}
