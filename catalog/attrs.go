package catalog

import (
	"fmt"
	"strings"
)

// Attrs is the single kind-specific attribute record shared by every Kind.
// A given Kind only reads the subset of fields that apply to it, and Param
// ignores the rest; key() still encodes every field, so callers leave the
// unused ones at their zero value.
//
// SplitSizes is the one field not reachable through Param, since Param
// only enumerates scalar integer ids; it is still part of the attribute
// record that participates in operator identity and in the graph hash.
type Attrs struct {
	OutputChannels int64
	KernelH        int64
	KernelW        int64
	StrideH        int64
	StrideW        int64
	PadH           int64
	PadW           int64
	ActiMode       ActiMode
	SplitSizes     []int64
}

// key returns a deterministic, order-stable encoding of (kind, attrs,
// numInputs, numOutputs) used as the Model intern-table key. It
// intentionally never includes an Op's guid.
//
// numInputs/numOutputs participate because variable-arity kinds (Concat,
// Split) can otherwise share an identical Attrs value across instances
// that differ only in arity; without them in the key, the second such
// instance would silently intern onto the first's (wrong) arity.
func key(k Kind, a Attrs, numInputs, numOutputs int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%d|%d|%d|%d|%d|%d|%d|%d|%d|%d", k,
		a.OutputChannels, a.KernelH, a.KernelW, a.StrideH, a.StrideW,
		a.PadH, a.PadW, a.ActiMode, numInputs, numOutputs)
	for _, s := range a.SplitSizes {
		fmt.Fprintf(&b, ",%d", s)
	}
	return b.String()
}

// Equal reports whether two attribute records are identical field-by-field.
func (a Attrs) Equal(o Attrs) bool {
	if a.OutputChannels != o.OutputChannels || a.KernelH != o.KernelH ||
		a.KernelW != o.KernelW || a.StrideH != o.StrideH || a.StrideW != o.StrideW ||
		a.PadH != o.PadH || a.PadW != o.PadW || a.ActiMode != o.ActiMode {
		return false
	}
	if len(a.SplitSizes) != len(o.SplitSizes) {
		return false
	}
	for i := range a.SplitSizes {
		if a.SplitSizes[i] != o.SplitSizes[i] {
			return false
		}
	}
	return true
}
