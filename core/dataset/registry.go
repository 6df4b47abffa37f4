package dataset

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no dataset is registered under a name.
var ErrNotFound = errors.New("data source not found")

// Resolver turns a rule's data source reference into a loaded dataset.
type Resolver interface {
	Resolve(ref string) (*Dataset, bool)
}

// Registry holds loaded datasets keyed by canonical name, in registration order.
type Registry struct {
	order []string
	sets  map[string]*Dataset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]*Dataset)}
}

// Register stores ds under name. Registering an existing name replaces the dataset
// but keeps its original position.
func (r *Registry) Register(name string, ds *Dataset) {
	if _, exists := r.sets[name]; !exists {
		r.order = append(r.order, name)
	}
	r.sets[name] = ds
}

// Get returns the dataset registered under exactly name.
func (r *Registry) Get(name string) (*Dataset, error) {
	ds, ok := r.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ds, nil
}

// Resolve implements Resolver with exact-name semantics.
func (r *Registry) Resolve(ref string) (*Dataset, bool) {
	ds, ok := r.sets[ref]
	return ds, ok
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// At returns the i-th registered dataset.
func (r *Registry) At(i int) (*Dataset, bool) {
	if i < 0 || i >= len(r.order) {
		return nil, false
	}
	return r.sets[r.order[i]], true
}

// First returns the earliest registered dataset.
func (r *Registry) First() (*Dataset, bool) {
	return r.At(0)
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	return len(r.order)
}
