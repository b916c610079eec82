// Package schema provides JSON Schema building and validation utilities.
//
// # Quick Start
//
//	s := schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "default_format": schema.String("Format used when none is requested").MinLength(1),
//	    "location":       schema.String("IANA zone for zone-less input"),
//	    "month_first":    schema.Boolean("Read 01/02/2006 as January 2"),
//	}))
//
//	if err := s.Validate(decodedConfig); err != nil {
//	    return err // *schema.ValidationError
//	}
//
// See [Object], [Property], and individual builder functions for detailed documentation.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema represents a JSON Schema definition.
// It provides both the raw map representation (for serialization)
// and a compiled validator (for runtime validation).
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

// Validate validates a decoded JSON document against the schema.
// The document must use JSON types (map[string]any, []any, float64, string,
// bool, nil), e.g. the output of [Normalize].
// Returns nil if valid, or a *ValidationError describing the failure.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	err := s.compiled.Validate(data)
	if err != nil {
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

// Normalize converts an arbitrary decoded document (e.g. from YAML) into the
// JSON value model expected by Validate.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
// Returns an error if the schema is invalid.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaData, err := Normalize(raw)
	if err != nil {
		return nil, err
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

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates a closed object schema with the given properties: unknown keys
// are rejected. Pass property names as variadic arguments to mark them as required.
//
// Example:
//
//	schema.Object(map[string]*schema.Property{
//	    "addr": schema.String("Listen address"),
//	}, "addr")
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

// Property represents a property in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	minLength   *int
	pattern     string
	raw         map[string]any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}
	for k, v := range p.raw {
		m[k] = v
	}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}

	return m
}

// String creates a string property.
//
// Example:
//
//	schema.String("Default format name").MinLength(1)
//	schema.String("Listen address").Pattern(`^[^:]*:[0-9]+$`)
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Nested embeds an already-built schema (e.g. from [Object] or [MapOf]) as a property.
//
// Example:
//
//	schema.Nested("HTTP server", schema.Object(map[string]*schema.Property{
//	    "addr": schema.String("Listen address"),
//	}))
func Nested(description string, built map[string]any) *Property {
	return &Property{description: description, raw: built}
}

// MapOf creates an object schema whose keys are free-form and whose values
// must match one of the given schemas.
//
// Example:
//
//	// name -> pattern string, or {strftime: pattern}
//	schema.MapOf(
//	    map[string]any{"type": "string"},
//	    schema.Object(map[string]*schema.Property{
//	        "strftime": schema.String("C-style pattern"),
//	    }, "strftime"),
//	)
func MapOf(values ...map[string]any) map[string]any {
	var value map[string]any
	switch len(values) {
	case 0:
		value = map[string]any{}
	case 1:
		value = values[0]
	default:
		oneOf := make([]any, len(values))
		for i, v := range values {
			oneOf[i] = v
		}
		value = map[string]any{"oneOf": oneOf}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": value,
	}
}

// Enum sets allowed values for the property.
//
// Example:
//
//	schema.String("Dialect").Enum("layout", "strftime", "joda")
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// Pattern sets a regex pattern for string validation.
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}
