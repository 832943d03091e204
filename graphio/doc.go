// Package graphio implements a YAML interchange format for graphs: a
// document listing nodes (guid, kind, attrs) and edges ((src_guid,
// src_idx, dst_guid, dst_idx) tuples), and the Export/Import round trip
// over it. Import reconstructs every node through catalog.Model.GetOrCreate
// so re-imported graphs hash identically to the graph that was exported.
//
// YAML is a natural fit for DAG-shaped data: it's human-editable and
// self-describing, unlike a binary node/edge table.
package graphio
