package graphio

import "github.com/graphforge/xflow/catalog"

// Document is the YAML-serializable form of a dag.Graph.
type Document struct {
	Nodes []NodeDoc `yaml:"nodes"`
	Edges []EdgeDoc `yaml:"edges"`
}

// NodeDoc describes one operator: its export-local guid, its Kind
// rendered as a name rather than a raw int (so the document stays
// readable and stable across catalog.Kind reordering), its attributes,
// and its declared arity (needed to reconstruct variable-arity kinds like
// Concat/Split exactly).
type NodeDoc struct {
	GUID       uint64   `yaml:"guid"`
	Kind       string   `yaml:"kind"`
	Attrs      AttrsDoc `yaml:"attrs"`
	NumInputs  int      `yaml:"num_inputs"`
	NumOutputs int      `yaml:"num_outputs"`
}

// AttrsDoc mirrors catalog.Attrs field-for-field; zero fields are omitted
// from the rendered document for readability.
type AttrsDoc struct {
	OutputChannels int64   `yaml:"output_channels,omitempty"`
	KernelH        int64   `yaml:"kernel_h,omitempty"`
	KernelW        int64   `yaml:"kernel_w,omitempty"`
	StrideH        int64   `yaml:"stride_h,omitempty"`
	StrideW        int64   `yaml:"stride_w,omitempty"`
	PadH           int64   `yaml:"pad_h,omitempty"`
	PadW           int64   `yaml:"pad_w,omitempty"`
	ActiMode       int     `yaml:"acti_mode,omitempty"`
	SplitSizes     []int64 `yaml:"split_sizes,omitempty"`
}

// EdgeDoc is one (src_guid, src_idx, dst_guid, dst_idx) tuple.
type EdgeDoc struct {
	SrcGUID uint64 `yaml:"src_guid"`
	SrcIdx  int    `yaml:"src_idx"`
	DstGUID uint64 `yaml:"dst_guid"`
	DstIdx  int    `yaml:"dst_idx"`
}

func attrsToDoc(a catalog.Attrs) AttrsDoc {
	return AttrsDoc{
		OutputChannels: a.OutputChannels,
		KernelH:        a.KernelH,
		KernelW:        a.KernelW,
		StrideH:        a.StrideH,
		StrideW:        a.StrideW,
		PadH:           a.PadH,
		PadW:           a.PadW,
		ActiMode:       int(a.ActiMode),
		SplitSizes:     append([]int64(nil), a.SplitSizes...),
	}
}

func attrsFromDoc(d AttrsDoc) catalog.Attrs {
	return catalog.Attrs{
		OutputChannels: d.OutputChannels,
		KernelH:        d.KernelH,
		KernelW:        d.KernelW,
		StrideH:        d.StrideH,
		StrideW:        d.StrideW,
		PadH:           d.PadH,
		PadW:           d.PadW,
		ActiMode:       catalog.ActiMode(d.ActiMode),
		SplitSizes:     append([]int64(nil), d.SplitSizes...),
	}
}
