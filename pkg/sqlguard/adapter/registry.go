package adapter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownKind is returned when registering an adapter under a kind outside the known set.
	ErrUnknownKind = errors.New("unknown adapter kind")

	// ErrAdapterNotFound is returned when no adapter is registered for a kind.
	ErrAdapterNotFound = errors.New("adapter not found")

	// ErrNilAdapter is returned when registering a nil adapter.
	ErrNilAdapter = errors.New("adapter is nil")

	// ErrTransactionsUnsupported is returned when a transaction is requested from an adapter that
	// implements neither TxController nor TransactionRunner.
	ErrTransactionsUnsupported = errors.New("adapter does not support transactions")
)

// Registry maps adapter kinds to implementations. It is safe for concurrent use.
type Registry struct {
	adapters map[Kind]Adapter
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[Kind]Adapter),
	}
}

// Register stores a under kind, replacing any previous registration.
func (r *Registry) Register(kind Kind, a Adapter) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if a == nil {
		return fmt.Errorf("%w: %s", ErrNilAdapter, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.adapters[kind] = a

	return nil
}

// Get returns the adapter registered for kind. The error names the kind and lists the registered ones.
func (r *Registry) Get(kind Kind) (Adapter, error) {
	r.mu.RLock()
	a, ok := r.adapters[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrAdapterNotFound, kind, joinKinds(r.Registered()))
	}

	return a, nil
}

// MustGet is like Get but panics when kind is not registered.
func (r *Registry) MustGet(kind Kind) Adapter {
	a, err := r.Get(kind)
	if err != nil {
		panic(err)
	}

	return a
}

// IsRegistered reports whether an adapter exists for kind.
func (r *Registry) IsRegistered(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.adapters[kind]

	return ok
}

// Registered returns the registered kinds, sorted.
func (r *Registry) Registered() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.adapters))
	for k := range r.adapters {
		kinds = append(kinds, k)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}

// Unregister removes the adapter for kind.
func (r *Registry) Unregister(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.adapters, kind)
}

func joinKinds(kinds []Kind) string {
	if len(kinds) == 0 {
		return "none"
	}

	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = string(k)
	}

	return strings.Join(s, ", ")
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register stores a in the default registry.
func Register(kind Kind, a Adapter) error {
	return defaultRegistry.Register(kind, a)
}

// Get looks kind up in the default registry.
func Get(kind Kind) (Adapter, error) {
	return defaultRegistry.Get(kind)
}
