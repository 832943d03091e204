package graphio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/graphforge/xflow/dag"
)

// Export renders g as a YAML document, using each node's Op.ID as its
// document-local guid.
func Export(g *dag.Graph) ([]byte, error) {
	order, err := g.TopoOrder()
	if err != nil {
		return nil, fmt.Errorf("graphio: Export: %w", err)
	}

	doc := Document{
		Nodes: make([]NodeDoc, 0, len(order)),
		Edges: make([]EdgeDoc, 0),
	}
	for _, op := range order {
		doc.Nodes = append(doc.Nodes, NodeDoc{
			GUID:       op.ID,
			Kind:       op.Kind.String(),
			Attrs:      attrsToDoc(op.Attrs),
			NumInputs:  op.NumInputs,
			NumOutputs: op.NumOutputs,
		})
		for _, e := range g.InEdges(op) {
			doc.Edges = append(doc.Edges, EdgeDoc{
				SrcGUID: e.Src.ID,
				SrcIdx:  e.SrcIdx,
				DstGUID: e.Dst.ID,
				DstIdx:  e.DstIdx,
			})
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("graphio: Export: marshal: %w", err)
	}
	return out, nil
}
