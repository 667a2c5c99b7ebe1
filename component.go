package genui

import "sort"

// Component is a registered component: a name and an opaque handle to something the
// rendering layer knows how to invoke. The registry never inspects or owns Handle.
type Component struct {
	Name   string
	Handle any
}

// Example is one node of a usage-example tree supplied by the caller. Examples show
// how components are invoked; the registry only cares about which component names
// appear in them and the handle attached to each.
//
// A node with an empty Component is plain content (Text) and registers nothing,
// but its Children are still scanned.
type Example struct {
	// Component is the component name used as the tag in markup.
	Component string

	// Handle is the renderable the component name resolves to.
	Handle any

	// Props are the example attribute values.
	Props map[string]any

	// Children are nested examples.
	Children []Example

	// Text is literal content for content-only nodes.
	Text string
}

// Registry maps component names to registered components.
//
// A Registry is built once with [NewRegistry] and never mutated afterwards, so it
// is safe for concurrent reads.
type Registry struct {
	components map[string]Component
}

// NewRegistry builds a Registry by walking the given usage-example trees depth-first
// and recording every component name together with its handle.
//
// Duplicate names are not an error: the entry seen last wins.
func NewRegistry(examples ...Example) *Registry {
	r := &Registry{components: make(map[string]Component)}
	for _, ex := range examples {
		r.collect(ex)
	}
	return r
}

func (r *Registry) collect(ex Example) {
	if ex.Component != "" {
		r.components[ex.Component] = Component{Name: ex.Component, Handle: ex.Handle}
	}
	for _, child := range ex.Children {
		r.collect(child)
	}
}

// Lookup returns the component registered under name.
// It never fails; a nil Registry resolves nothing.
func (r *Registry) Lookup(name string) (Component, bool) {
	if r == nil {
		return Component{}, false
	}
	c, ok := r.components[name]
	return c, ok
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.components)
}
