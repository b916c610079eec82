package datefmt

import (
	"bytes"
	"encoding/json"
)

// Result is the output of [Formatter.Format]: a single string for a single
// format name, or an ordered mapping of name to string otherwise.
//
// A nil *Result means the input was absent. All methods are safe on nil.
type Result struct {
	multi  bool
	names  []string
	values map[string]string
}

func singleResult(name, value string) *Result {
	return &Result{
		names:  []string{name},
		values: map[string]string{name: value},
	}
}

func multiResult(capacity int) *Result {
	return &Result{
		multi:  true,
		names:  make([]string, 0, capacity),
		values: make(map[string]string, capacity),
	}
}

// set records value under name. A repeated name keeps its first position and
// takes the latest value.
func (r *Result) set(name, value string) {
	if _, exists := r.values[name]; !exists {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// IsAbsent reports whether the formatted input was absent.
func (r *Result) IsAbsent() bool {
	return r == nil
}

// IsMulti reports whether the result is a mapping rather than a single string.
func (r *Result) IsMulti() bool {
	return r != nil && r.multi
}

// String returns the rendered value of a single-format result, or "" for
// absent and mapping results.
func (r *Result) String() string {
	if r == nil || r.multi || len(r.names) == 0 {
		return ""
	}
	return r.values[r.names[0]]
}

// Get returns the rendered value for name.
func (r *Result) Get(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.values[name]
	return v, ok
}

// Names returns the rendered format names in request order.
func (r *Result) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Map returns the rendered values keyed by format name.
func (r *Result) Map() map[string]string {
	if r == nil {
		return nil
	}
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes a single result as a JSON string and a mapping result as
// a JSON object with keys in request order.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	if !r.multi {
		return json.Marshal(r.String())
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
