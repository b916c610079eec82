// Package provider wires the parser and formatter into a service container.
//
// # Keys
//
//	date/custom-formats  *datefmt.Registry  custom formats, empty by default
//	date/default-format  string             "atom" by default
//	date/parser          datefmt.DateParser built lazily
//	date/formatter       *datefmt.Formatter built lazily from the three above
//
// # Usage
//
//	c := provider.NewContainer().Register(provider.ServiceProvider{})
//
//	// Override defaults before the formatter is first requested.
//	c.Set(provider.KeyCustomFormats, datefmt.NewRegistry().
//	    Register("short", datefmt.Layout("Jan 2")))
//
//	f, err := provider.Formatter(c)
package provider

import (
	"github.com/rickchristie/datefmt"
)

// Container keys.
const (
	KeyCustomFormats = "date/custom-formats"
	KeyDefaultFormat = "date/default-format"
	KeyParser        = "date/parser"
	KeyFormatter     = "date/formatter"
)

// ServiceProvider registers the default parser and formatter entries.
type ServiceProvider struct{}

// Register implements Provider.
func (ServiceProvider) Register(c *Container) {
	c.Set(KeyCustomFormats, datefmt.NewRegistry())
	c.Set(KeyDefaultFormat, datefmt.DefaultFormatName)

	c.Factory(KeyParser, func(c *Container) (any, error) {
		return datefmt.NewParser(), nil
	})

	c.Factory(KeyFormatter, func(c *Container) (any, error) {
		parser, err := Resolve[datefmt.DateParser](c, KeyParser)
		if err != nil {
			return nil, err
		}
		custom, err := Resolve[*datefmt.Registry](c, KeyCustomFormats)
		if err != nil {
			return nil, err
		}
		defaultFormat, err := Resolve[string](c, KeyDefaultFormat)
		if err != nil {
			return nil, err
		}
		return datefmt.NewFormatter(parser, datefmt.Config{
			CustomFormats: custom,
			DefaultFormat: defaultFormat,
		}), nil
	})
}

// Parser returns the container's parser.
func Parser(c *Container) (datefmt.DateParser, error) {
	return Resolve[datefmt.DateParser](c, KeyParser)
}

// Formatter returns the container's formatter.
func Formatter(c *Container) (*datefmt.Formatter, error) {
	return Resolve[*datefmt.Formatter](c, KeyFormatter)
}

// Compile-time check that ServiceProvider implements Provider.
var _ Provider = ServiceProvider{}
