package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema represents a compiled JSON Schema.
// It keeps the raw map representation (for printing) next to the compiled
// validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates data against the schema.
//
// Data decoded from YAML carries Go integer and time types the validator does not
// know, so it is normalized through JSON first.
// Returns nil if valid, or a *ValidationError describing the failure.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	value, err := jsonValue(data)
	if err != nil {
		return &ValidationError{Err: err}
	}
	if err := s.compiled.Validate(value); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation error with a cleaner message.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
// A nil map compiles to a nil Schema, which accepts everything.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaData, err := jsonValue(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// jsonValue round-trips v through encoding/json into the representation the
// validator expects.
func jsonValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties.
// Pass property names as variadic arguments to mark them as required.
// Properties not listed are rejected.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Ref creates a reference to a definition under "$defs".
func Ref(name string) map[string]any {
	return map[string]any{"$ref": "#/$defs/" + name}
}

// Property represents a property in an object schema.
type Property struct {
	typ         []string
	description string
	pattern     string
	minLength   *int
	items       map[string]any
	values      map[string]any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	switch len(p.typ) {
	case 0:
	case 1:
		m["type"] = p.typ[0]
	default:
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.items != nil {
		m["items"] = p.items
	}
	if p.values != nil {
		m["additionalProperties"] = p.values
	}

	return m
}

// String creates a string property.
//
// Example:
//
//	catalog.String("Component name").Pattern(`^[A-Z]`)
func String(description string) *Property {
	return &Property{typ: []string{"string"}, description: description}
}

// Array creates an array property with the given item schema.
//
// Example:
//
//	catalog.Array("Usage examples", catalog.Ref("example"))
func Array(description string, items map[string]any) *Property {
	return &Property{typ: []string{"array"}, description: description, items: items}
}

// Map creates an object property whose values all match values. A nil values
// schema accepts any object.
//
// Example:
//
//	catalog.Map("Example props", catalog.Scalar())
func Map(description string, values map[string]any) *Property {
	return &Property{typ: []string{"object"}, description: description, values: values}
}

// Scalar returns the schema of a literal attribute value.
func Scalar() map[string]any {
	return map[string]any{"type": []string{"string", "number", "boolean", "null"}}
}

// Pattern sets a regex pattern for string validation.
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// describe returns the "type" of a schema for prompt listings.
func describe(raw map[string]any) string {
	switch t := raw["type"].(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, v := range t {
			parts = append(parts, fmt.Sprint(v))
		}
		return strings.Join(parts, "|")
	case []string:
		return strings.Join(t, "|")
	default:
		return "any"
	}
}
