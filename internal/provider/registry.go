package provider

import (
	"fmt"
	"sort"

	iface "jobfinder/internal/provider/iface"
)

// Registry holds the configured provider adapters keyed by provider ID.
type Registry struct {
	adapters map[string]iface.Adapter
}

func NewRegistry(adapters ...iface.Adapter) *Registry {
	r := &Registry{adapters: make(map[string]iface.Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.ID()] = a
	}
	return r
}

func (r *Registry) Get(providerID string) (iface.Adapter, error) {
	a, ok := r.adapters[providerID]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", providerID)
	}
	return a, nil
}

// IDs returns the registered provider IDs in stable order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
