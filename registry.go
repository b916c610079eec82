package datefmt

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry is an ordered mapping of format name to [Spec].
//
// Names keep the position of their first registration. Registering an existing
// name replaces its Spec in place, so a custom "atom" keeps the built-in's slot
// when enumerated.
//
// Example:
//
//	custom := datefmt.NewRegistry().
//	    Register("short", datefmt.Layout("Jan 2")).
//	    Register("ymd", datefmt.Strftime("%Y/%m/%d")).
//	    Register("quarter", datefmt.Func(func(t time.Time) string {
//	        return fmt.Sprintf("Q%d", (int(t.Month())-1)/3+1)
//	    }))
//
// # Thread Safety
//
// Registry is NOT thread-safe. Build it fully before handing it to
// [NewFormatter], which keeps its own copy.
type Registry struct {
	names []string
	specs map[string]Spec
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]Spec),
	}
}

// Register adds or replaces the Spec for name.
//
// Register panics if spec is nil or a nil Func: a registry only ever holds
// renderable specifications.
func (r *Registry) Register(name string, spec Spec) *Registry {
	if spec == nil {
		panic(fmt.Sprintf("datefmt: nil format specification for %q", name))
	}
	if fn, ok := spec.(Func); ok && fn == nil {
		panic(fmt.Sprintf("datefmt: nil Func for %q", name))
	}
	if r.specs == nil {
		r.specs = make(map[string]Spec)
	}
	if _, exists := r.specs[name]; !exists {
		r.names = append(r.names, name)
	}
	r.specs[name] = spec
	return r
}

// Get returns the Spec registered under name.
func (r *Registry) Get(name string) (Spec, bool) {
	if r == nil {
		return nil, false
	}
	spec, ok := r.specs[name]
	return spec, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	if r == nil || len(r.names) == 0 {
		return nil
	}
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	if r == nil {
		return c
	}
	for _, name := range r.names {
		c.Register(name, r.specs[name])
	}
	return c
}

// Merge returns a new Registry with other's entries applied on top of r's.
// Neither input is modified.
func (r *Registry) Merge(other *Registry) *Registry {
	merged := r.Clone()
	if other == nil {
		return merged
	}
	for _, name := range other.names {
		merged.Register(name, other.specs[name])
	}
	return merged
}

// -----------------------------------------------------------------------------
// YAML
// -----------------------------------------------------------------------------

// UnmarshalYAML decodes a mapping of name to specification, preserving key order.
// A scalar value is a Go layout; a mapping value names its dialect:
//
//	custom_formats:
//	  short: "Jan 2"
//	  ymd:
//	    strftime: "%Y/%m/%d"
//	  european:
//	    joda: "dd/MM/yyyy"
//	  kitchen:
//	    layout: "3:04PM"
func (r *Registry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: formats must be a mapping of name to pattern", node.Line)
	}

	decoded := NewRegistry()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil {
			return fmt.Errorf("line %d: format name: %w", keyNode.Line, err)
		}
		spec, err := decodeSpec(valueNode)
		if err != nil {
			return fmt.Errorf("format %q: %w", name, err)
		}
		decoded.Register(name, spec)
	}

	*r = *decoded
	return nil
}

func decodeSpec(node *yaml.Node) (Spec, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var pattern string
		if err := node.Decode(&pattern); err != nil {
			return nil, err
		}
		return Layout(pattern), nil
	case yaml.MappingNode:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		if len(m) != 1 {
			return nil, fmt.Errorf("line %d: exactly one of layout, strftime or joda is required", node.Line)
		}
		for dialect, pattern := range m {
			switch strings.ToLower(dialect) {
			case "layout":
				return Layout(pattern), nil
			case "strftime":
				return Strftime(pattern), nil
			case "joda":
				return Joda(pattern), nil
			default:
				return nil, fmt.Errorf("line %d: unknown pattern dialect %q", node.Line, dialect)
			}
		}
	}
	return nil, fmt.Errorf("line %d: format must be a pattern string or a mapping", node.Line)
}

// MarshalYAML encodes the registry as an ordered mapping. Func entries cannot be
// represented and cause an error.
func (r *Registry) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if r == nil {
		return node, nil
	}
	for _, name := range r.names {
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str"}
		switch s := r.specs[name].(type) {
		case Layout:
			value.Value = string(s)
		case Strftime:
			value = dialectNode("strftime", string(s))
		case Joda:
			value = dialectNode("joda", string(s))
		default:
			return nil, fmt.Errorf("format %q: %s specification cannot be encoded", name, s.specKind())
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			value,
		)
	}
	return node, nil
}

func dialectNode(dialect, pattern string) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: dialect},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: pattern},
		},
	}
}
