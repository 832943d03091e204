// File: model.go
// Role: process-wide operator interning table.
//
// muBases guards the intern table itself; the guid counter is atomic and
// needs no lock of its own, since guid assignment never needs to observe
// table state.
package catalog

import (
	"sync"
	"sync/atomic"
)

// Model owns the canonical Base table shared by every Graph in a search,
// and mints the monotonic per-node guid handed out by GetOrCreate. Two
// GetOrCreate calls with an equal (kind, attrs) key share the same *Base
// (and so the same CostOracle measurement) but always receive distinct
// Op.ID values, because each call constructs a new graph node.
type Model struct {
	muBases sync.RWMutex
	bases   map[string]*Base
	nextID  uint64 // atomic guid counter; guids are identity-only, never semantic
}

// NewModel returns an empty interning table.
func NewModel() *Model {
	return &Model{bases: make(map[string]*Base)}
}

// GetOrCreate returns a fresh Op wrapping the canonical Base for (kind,
// attrs, numInputs, numOutputs), interning the Base on first use. For
// fixed-arity kinds the supplied numInputs/numOutputs are overridden by
// the kind's arity; callers building Concat/Split pass the
// instance-specific arity directly.
func (m *Model) GetOrCreate(kind Kind, attrs Attrs, numInputs, numOutputs int) *Op {
	if in, out, fixed := defaultArity(kind); fixed {
		numInputs, numOutputs = in, out
	}
	k := key(kind, attrs, numInputs, numOutputs)

	base := m.internBase(k, kind, attrs, numInputs, numOutputs)

	return &Op{ID: atomic.AddUint64(&m.nextID, 1), Base: base}
}

func (m *Model) internBase(k string, kind Kind, attrs Attrs, numInputs, numOutputs int) *Base {
	m.muBases.RLock()
	if b, ok := m.bases[k]; ok {
		m.muBases.RUnlock()
		return b
	}
	m.muBases.RUnlock()

	m.muBases.Lock()
	defer m.muBases.Unlock()
	// Re-check: another writer may have inserted between RUnlock and Lock.
	if b, ok := m.bases[k]; ok {
		return b
	}
	b := &Base{Kind: kind, Attrs: attrs, NumInputs: numInputs, NumOutputs: numOutputs}
	m.bases[k] = b

	return b
}

// LookupBase returns the canonical Base for (kind, attrs) if it has
// already been interned, without creating it.
func (m *Model) LookupBase(kind Kind, attrs Attrs, numInputs, numOutputs int) (*Base, bool) {
	m.muBases.RLock()
	defer m.muBases.RUnlock()
	b, ok := m.bases[key(kind, attrs, numInputs, numOutputs)]
	return b, ok
}

// Size reports the number of distinct interned Base records. Used by
// diagnostics and tests; not on any hot path.
func (m *Model) Size() int {
	m.muBases.RLock()
	defer m.muBases.RUnlock()
	return len(m.bases)
}
