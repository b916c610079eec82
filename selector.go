package datefmt

import (
	"fmt"
	"reflect"
)

// Selector chooses which formats a [Formatter] renders. The set is closed:
//
//   - [DefaultSelector]: the formatter's configured default format
//   - [NameSelector]: one named format, rendered as a single string
//   - [NamesSelector]: several named formats, rendered as an ordered mapping
//   - [AllSelector]: every registered format, rendered as an ordered mapping
//   - [InvalidSelector]: rejected with ErrInvalidFormatSelector
//
// Use [SelectorOf] to classify an arbitrary value.
type Selector interface {
	selectorKind() string
}

// DefaultSelector selects the configured default format.
type DefaultSelector struct{}

// NameSelector selects one format by name.
type NameSelector string

// NamesSelector selects several formats by name, in order.
type NamesSelector []string

// AllSelector selects every format of the merged registry.
type AllSelector struct{}

// InvalidSelector is a value that cannot select formats.
type InvalidSelector struct {
	Value  any
	Reason string
}

func (DefaultSelector) selectorKind() string { return "default" }
func (NameSelector) selectorKind() string    { return "name" }
func (NamesSelector) selectorKind() string   { return "names" }
func (AllSelector) selectorKind() string     { return "all" }
func (InvalidSelector) selectorKind() string { return "invalid" }

// Err returns the error reported for this selector.
func (s InvalidSelector) Err() error {
	return fmt.Errorf("%w: %s", ErrInvalidFormatSelector, s.Reason)
}

// SelectorOf classifies a dynamic value:
//
//	nil              -> DefaultSelector
//	AllFormats       -> AllSelector
//	string           -> NameSelector
//	[]string         -> NamesSelector
//	[]any of strings -> NamesSelector
//	other slices and arrays of string kind -> NamesSelector
//	Selector         -> returned unchanged
//	anything else    -> InvalidSelector
func SelectorOf(v any) Selector {
	switch v := v.(type) {
	case nil:
		return DefaultSelector{}
	case Selector:
		if name, ok := v.(NameSelector); ok && string(name) == AllFormats {
			return AllSelector{}
		}
		return v
	case string:
		if v == AllFormats {
			return AllSelector{}
		}
		return NameSelector(v)
	case []string:
		return NamesSelector(v)
	case []any:
		names := make(NamesSelector, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return InvalidSelector{Value: v, Reason: fmt.Sprintf("each entry must be a name, got %T", item)}
			}
			names = append(names, name)
		}
		return names
	default:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return sequenceOf(v, rv)
		}
		return InvalidSelector{Value: v, Reason: fmt.Sprintf("selector must be a name or a sequence of names, got %T", v)}
	}
}

// sequenceOf classifies slices and arrays other than []string and []any.
func sequenceOf(v any, rv reflect.Value) Selector {
	names := make(NamesSelector, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i)
		if item.Kind() == reflect.Interface && !item.IsNil() {
			item = item.Elem()
		}
		if item.Kind() != reflect.String {
			return InvalidSelector{Value: v, Reason: fmt.Sprintf("each entry must be a name, got %s", item.Type())}
		}
		names = append(names, item.String())
	}
	return names
}
