package dialect

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds named dialects.
type Registry struct {
	dialects map[string]Dialect
}

// NewRegistry creates an empty dialect registry.
func NewRegistry() *Registry {
	return &Registry{dialects: make(map[string]Dialect)}
}

// Register adds a dialect. Panics on duplicate name.
func (r *Registry) Register(d Dialect) {
	key := strings.ToLower(d.Name)
	if _, ok := r.dialects[key]; ok {
		panic("duplicate dialect: " + key)
	}
	r.dialects[key] = d.Clone()
}

// Override adds or replaces a dialect after validating it.
func (r *Registry) Override(d Dialect) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.dialects[strings.ToLower(d.Name)] = d.Clone()
	return nil
}

// Get returns a copy of the dialect registered under name.
func (r *Registry) Get(name string) (Dialect, bool) {
	d, ok := r.dialects[strings.ToLower(name)]
	if !ok {
		return Dialect{}, false
	}
	return d.Clone(), true
}

// Names returns registered dialect names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dialects))
	for k := range r.dialects {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in dialects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range Builtins() {
		r.Register(d)
	}
	return r
}

// LoadRegistry returns the built-in dialects overlaid with the ones in path.
// An empty path yields the built-ins alone.
func LoadRegistry(path string) (*Registry, error) {
	r := DefaultRegistry()
	if path == "" {
		return r, nil
	}
	cat, err := Load(path)
	if err != nil {
		return nil, err
	}
	for _, d := range cat.Dialects {
		if err := r.Override(d); err != nil {
			return nil, fmt.Errorf("registering dialect %s: %w", d.Name, err)
		}
	}
	return r, nil
}
