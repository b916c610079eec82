// Package starlarkdate exposes a Formatter to Starlark scripts.
//
//	date = module(
//	    parse,
//	    format,
//	    formats,
//	    ALL_FORMATS,
//	    DEFAULT_FORMAT,
//	)
//
// def parse(value, allow_none=True):
//
//	Returns value as a time.time. value may be None, a string, or a
//	time.time (returned unchanged). None is returned as None unless
//	allow_none is False, in which case it is an error.
//
// def format(value, format=None):
//
//	Formats value with the named format. format may be None (the default
//	format), a name, ALL_FORMATS, or a list/tuple of names. A single name
//	returns a string, anything else a dict in request order. A None value
//	returns None.
//
// def formats():
//
//	Returns the list of available format names.
//
// Example:
//
//	load("date", "date")
//
//	d = date.parse("January 5th, 2010")
//	parts = date.format(d, ["day", "month", "year"])  # {"day": "05", "month": "01", "year": "2010"}
package starlarkdate

import (
	"fmt"
	"time"

	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/rickchristie/datefmt"
)

// NewModule returns the "date" module backed by f.
func NewModule(f *datefmt.Formatter) *starlarkstruct.Module {
	m := &module{formatter: f}
	return &starlarkstruct.Module{
		Name: "date",
		Members: starlark.StringDict{
			"parse":          starlark.NewBuiltin("date.parse", m.parse),
			"format":         starlark.NewBuiltin("date.format", m.format),
			"formats":        starlark.NewBuiltin("date.formats", m.formats),
			"ALL_FORMATS":    starlark.String(datefmt.AllFormats),
			"DEFAULT_FORMAT": starlark.String(f.DefaultFormat()),
		},
	}
}

// LoadModule returns the module as a load() result, for use in Thread.Load.
func LoadModule(f *datefmt.Formatter) starlark.StringDict {
	return starlark.StringDict{"date": NewModule(f)}
}

type module struct {
	formatter *datefmt.Formatter
}

func (m *module) parse(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	allowNone := true
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &value, "allow_none?", &allowNone); err != nil {
		return nil, err
	}

	t, err := m.formatter.Parser().ParseInput(toInput(value), allowNone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	if t == nil {
		return starlark.None, nil
	}
	return starlarktime.Time(*t), nil
}

func (m *module) format(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value, selector starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &value, "format?", &selector); err != nil {
		return nil, err
	}

	res, err := m.formatter.FormatInput(toInput(value), toSelector(selector))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return fromResult(res)
}

func (m *module) formats(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	names := m.formatter.Formats()
	elems := make([]starlark.Value, len(names))
	for i, name := range names {
		elems[i] = starlark.String(name)
	}
	return starlark.NewList(elems), nil
}

func toInput(v starlark.Value) datefmt.Input {
	switch v := v.(type) {
	case nil, starlark.NoneType:
		return datefmt.AbsentInput{}
	case starlark.String:
		return datefmt.StringInput(string(v))
	case starlarktime.Time:
		t := time.Time(v)
		return datefmt.TimeInput{Time: &t}
	default:
		return datefmt.InvalidInput{Value: v}
	}
}

func toSelector(v starlark.Value) datefmt.Selector {
	switch v := v.(type) {
	case nil, starlark.NoneType:
		return datefmt.DefaultSelector{}
	case starlark.String:
		return datefmt.SelectorOf(string(v))
	case *starlark.List, starlark.Tuple:
		seq := v.(starlark.Indexable)
		items := make([]any, seq.Len())
		for i := range items {
			if s, ok := seq.Index(i).(starlark.String); ok {
				items[i] = string(s)
			} else {
				items[i] = seq.Index(i)
			}
		}
		return datefmt.SelectorOf(items)
	default:
		return datefmt.SelectorOf(v)
	}
}

func fromResult(res *datefmt.Result) (starlark.Value, error) {
	if res.IsAbsent() {
		return starlark.None, nil
	}
	if !res.IsMulti() {
		return starlark.String(res.String()), nil
	}
	names := res.Names()
	d := starlark.NewDict(len(names))
	for _, name := range names {
		value, _ := res.Get(name)
		if err := d.SetKey(starlark.String(name), starlark.String(value)); err != nil {
			return nil, err
		}
	}
	return d, nil
}
