package graphio

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/dag"
)

// ErrDanglingEdge indicates an edge referenced a guid absent from the
// document's node list.
var ErrDanglingEdge = errors.New("graphio: edge references unknown guid")

// Import parses a graphio document and rebuilds it against model,
// reconstructing every node via catalog.Model.GetOrCreate so the result
// hashes identically to the Graph Export produced it from.
//
// Nodes may be listed in any order: every node is added before any edge
// is wired, so an edge only needs both of its guids to appear somewhere in
// the node list.
func Import(data []byte, model *catalog.Model) (*dag.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("graphio: Import: unmarshal: %w", err)
	}

	g := dag.NewGraph(model)
	byGUID := make(map[uint64]*catalog.Op, len(doc.Nodes))

	for _, n := range doc.Nodes {
		kind, err := parseKind(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("graphio: Import: %w", err)
		}
		op := model.GetOrCreate(kind, attrsFromDoc(n.Attrs), n.NumInputs, n.NumOutputs)
		if err := g.AddNode(op); err != nil {
			return nil, fmt.Errorf("graphio: Import: adding node: %w", err)
		}
		byGUID[n.GUID] = op
	}

	for _, e := range doc.Edges {
		src, ok := byGUID[e.SrcGUID]
		if !ok {
			return nil, fmt.Errorf("graphio: Import: src guid %d: %w", e.SrcGUID, ErrDanglingEdge)
		}
		dst, ok := byGUID[e.DstGUID]
		if !ok {
			return nil, fmt.Errorf("graphio: Import: dst guid %d: %w", e.DstGUID, ErrDanglingEdge)
		}
		if err := g.AddEdge(src, e.SrcIdx, dst, e.DstIdx); err != nil {
			return nil, fmt.Errorf("graphio: Import: edge (%d,%d)->(%d,%d): %w", e.SrcGUID, e.SrcIdx, e.DstGUID, e.DstIdx, err)
		}
	}

	return g, nil
}
