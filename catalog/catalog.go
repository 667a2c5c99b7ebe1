package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/rickchristie/genui"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidCatalog is returned when a catalog document is malformed or does not
	// match the catalog schema.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrUndeclaredComponent is returned when an example uses a component the
	// catalog does not declare.
	ErrUndeclaredComponent = errors.New("example uses an undeclared component")

	// ErrInvalidExampleProps is returned when example props do not match the props
	// schema of their component.
	ErrInvalidExampleProps = errors.New("invalid example props")
)

// componentNamePattern accepts the names markup treats as component tags: an
// uppercase initial, or a dotted member path.
const componentNamePattern = `^([A-Z][A-Za-z0-9_]*|[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)+)$`

var documentSchema = MustCompile(documentSchemaRaw())

func documentSchemaRaw() map[string]any {
	doc := Object(map[string]*Property{
		"name":       String("Catalog name"),
		"components": Array("Components available to the model", Ref("component")),
	}, "components")

	doc["$defs"] = map[string]any{
		"component": Object(map[string]*Property{
			"name":        String("Tag name used in markup").Pattern(componentNamePattern),
			"description": String("What the component shows"),
			"props":       Map("JSON Schema of the component props", nil),
			"examples":    Array("Usage examples", Ref("example")),
		}, "name"),
		"example": Object(map[string]*Property{
			"component": String("Component invoked by this node").Pattern(componentNamePattern),
			"text":      String("Literal content").MinLength(1),
			"props":     Map("Attribute values", Scalar()),
			"children":  Array("Nested examples", Ref("example")),
		}),
	}
	return doc
}

// Catalog is a set of component declarations with their usage examples.
type Catalog struct {
	Name       string          `yaml:"name"`
	Components []ComponentSpec `yaml:"components"`

	byName map[string]*ComponentSpec
}

// ComponentSpec declares one component.
type ComponentSpec struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Props       map[string]any `yaml:"props"`
	Examples    []ExampleSpec  `yaml:"examples"`

	schema *Schema
}

// Schema returns the compiled props schema, or nil when the component declares none.
func (c *ComponentSpec) Schema() *Schema {
	return c.schema
}

// ExampleSpec is one node of a usage example as written in a catalog file.
type ExampleSpec struct {
	Component string         `yaml:"component"`
	Text      string         `yaml:"text"`
	Props     map[string]any `yaml:"props"`
	Children  []ExampleSpec  `yaml:"children"`
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse parses a YAML catalog document.
//
// The document is validated against the catalog schema, every component props
// schema is compiled, and every example is checked: its components must be
// declared and its props must match their component's props schema.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := documentSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	c.byName = make(map[string]*ComponentSpec, len(c.Components))
	for i := range c.Components {
		spec := &c.Components[i]
		if _, dup := c.byName[spec.Name]; dup {
			return nil, fmt.Errorf("%w: component %s declared twice", ErrInvalidCatalog, spec.Name)
		}
		schema, err := Compile(spec.Props)
		if err != nil {
			return nil, fmt.Errorf("%w: component %s props: %w", ErrInvalidCatalog, spec.Name, err)
		}
		spec.schema = schema
		c.byName[spec.Name] = spec
	}

	for _, spec := range c.Components {
		for i, ex := range spec.Examples {
			if err := c.checkExample(ex); err != nil {
				return nil, fmt.Errorf("component %s example %d: %w", spec.Name, i+1, err)
			}
		}
	}
	return c, nil
}

func (c *Catalog) checkExample(ex ExampleSpec) error {
	if ex.Component != "" {
		spec, ok := c.byName[ex.Component]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUndeclaredComponent, ex.Component)
		}
		if err := spec.schema.Validate(propsValue(ex.Props)); err != nil {
			return fmt.Errorf("%w: <%s>: %w", ErrInvalidExampleProps, ex.Component, err)
		}
	}
	for _, child := range ex.Children {
		if err := c.checkExample(child); err != nil {
			return err
		}
	}
	return nil
}

// propsValue returns props as a JSON object value; missing props are an empty object.
func propsValue(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}
	return props
}

// Component returns the declaration of the named component.
func (c *Catalog) Component(name string) (*ComponentSpec, bool) {
	spec, ok := c.byName[name]
	return spec, ok
}

// Examples converts the catalog into usage-example trees for genui.NewRegistry.
//
// Every component node gets the handle registered for its name in handles, or its
// own name when there is none. A component without examples contributes a single
// bare node so it is still registered.
func (c *Catalog) Examples(handles map[string]any) []genui.Example {
	var out []genui.Example
	for _, spec := range c.Components {
		if len(spec.Examples) == 0 {
			out = append(out, genui.Example{Component: spec.Name, Handle: handle(handles, spec.Name)})
			continue
		}
		for _, ex := range spec.Examples {
			out = append(out, toExample(ex, handles))
		}
	}
	return out
}

// Registry builds a component registry from the catalog examples.
func (c *Catalog) Registry(handles map[string]any) *genui.Registry {
	return genui.NewRegistry(c.Examples(handles)...)
}

func toExample(ex ExampleSpec, handles map[string]any) genui.Example {
	out := genui.Example{
		Component: ex.Component,
		Text:      ex.Text,
		Props:     normalizeProps(ex.Props),
	}
	if ex.Component != "" {
		out.Handle = handle(handles, ex.Component)
	}
	for _, child := range ex.Children {
		out.Children = append(out.Children, toExample(child, handles))
	}
	return out
}

func handle(handles map[string]any, name string) any {
	if h, ok := handles[name]; ok {
		return h
	}
	return name
}

// normalizeProps converts YAML integers to float64, the number type hydrated
// props use.
func normalizeProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		switch n := v.(type) {
		case int:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		case uint64:
			out[k] = float64(n)
		default:
			out[k] = v
		}
	}
	return out
}
