package template

import (
	"sort"
	"sync"
)

// Registry provides thread-safe storage and retrieval of templates. It is an
// explicit, caller-constructed object; independent pipelines can carry
// independent template sets. Optimized for read-heavy workloads with
// sync.RWMutex.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewRegistry creates an empty template registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds a template after validating it.
// Returns TEMPLATE_ALREADY_EXISTS if the ID is taken.
func (r *Registry) Register(t Template) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[t.ID]; exists {
		return NewTemplateAlreadyExistsError(t.ID)
	}
	r.templates[t.ID] = t
	return nil
}

// Get retrieves a template by ID. The returned template is a copy.
func (r *Registry) Get(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[id]
	if !ok {
		return nil, NewTemplateNotFoundError(id)
	}
	return &t, nil
}

// List returns all registered templates sorted by ID.
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Unregister removes a template by ID.
// Returns TEMPLATE_NOT_FOUND if it does not exist.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[id]; !exists {
		return NewTemplateNotFoundError(id)
	}
	delete(r.templates, id)
	return nil
}

// LoadFromFile registers every template found in a YAML or JSON file.
func (r *Registry) LoadFromFile(path string) error {
	templates, err := LoadTemplatesFromFile(path)
	if err != nil {
		return err
	}
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// LoadFromDirectory registers every template found in a directory.
func (r *Registry) LoadFromDirectory(dir string) error {
	templates, err := LoadTemplatesFromDirectory(dir)
	if err != nil {
		return err
	}
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}
