package provider

import (
	"context"
	"sort"
	"sync"
)

// Descriptor holds the static metadata of a billing provider.
type Descriptor struct {
	// ID is the unique provider identifier (matches credential.Provider).
	ID string `json:"id"`
	// DisplayName is the human-readable provider name.
	DisplayName string `json:"display_name"`
	// Category is the charge category new charges are filed under.
	Category string `json:"category"`
}

// Adapter fetches a normalized usage snapshot from one provider's billing API.
//
// Implementations must not return an error for ordinary business outcomes
// (invalid key, zero usage); those belong in the snapshot. An error return
// is reserved for transport-level failures.
type Adapter interface {
	// Descriptor returns the provider's static metadata.
	Descriptor() Descriptor
	// FetchUsage queries the provider's billing API with the given secret.
	FetchUsage(ctx context.Context, apiKey string) (*Snapshot, error)
}

// Registry is the provider-identifier lookup table of adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its descriptor ID, replacing any previous one.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Descriptor().ID] = a
}

// Get returns the adapter for a provider identifier.
func (r *Registry) Get(id string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[id]
	return a, ok
}

// IDs returns the registered provider identifiers, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRegistry returns a registry with all built-in adapters registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewOpenAIAdapter())
	r.Register(NewAnthropicAdapter())
	r.Register(NewOpenRouterAdapter())
	return r
}
