package chain

import (
	"fmt"

	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
)

// Registry maps chain families to their adapters. Families form a closed
// set resolved at asset-configuration load, so registration happens once
// at startup and lookups never parse anything.
type Registry struct {
	adapters map[domain.ChainFamily]ports.ChainAdapter
}

// NewRegistry creates a registry over the given adapters, keyed by each
// adapter's own family.
func NewRegistry(adapters ...ports.ChainAdapter) *Registry {
	r := &Registry{adapters: make(map[domain.ChainFamily]ports.ChainAdapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Family()] = a
	}
	return r
}

// ForFamily implements ports.AdapterRegistry.
func (r *Registry) ForFamily(family domain.ChainFamily) (ports.ChainAdapter, error) {
	adapter, ok := r.adapters[family]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for chain family %s", family)
	}
	return adapter, nil
}
