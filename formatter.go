package datefmt

import (
	"fmt"
	"time"
)

// Config holds the construction-time settings of a [Formatter].
type Config struct {
	// CustomFormats are merged over the built-in formats. A custom format with a
	// built-in name replaces the built-in. Nil means no custom formats.
	CustomFormats *Registry `yaml:"custom_formats"`

	// DefaultFormat is used when no selector is given. Empty means "atom".
	DefaultFormat string `yaml:"default_format"`
}

// Formatter renders dates with named formats.
//
// # Selectors
//
// Format accepts the same selector shapes as [SelectorOf]:
//
//	f.Format(date, nil)                     // default format, single string
//	f.Format(date, "rfc822")                // single string
//	f.Format(date, []string{"day", "year"}) // ordered mapping
//	f.Format(date, datefmt.AllFormats)      // ordered mapping of every format
//
// # Absence
//
// Absent input (nil, a nil *time.Time) is not an error: Format returns a nil
// *Result and a nil error for every selector, without validating the selector.
//
// # Example
//
//	custom := datefmt.NewRegistry().
//	    Register("short", datefmt.Layout("Jan 2")).
//	    Register("atom", datefmt.Layout(time.RFC3339Nano))
//
//	f := datefmt.NewFormatter(datefmt.NewParser(), datefmt.Config{
//	    CustomFormats: custom,
//	    DefaultFormat: "short",
//	})
//
//	res, err := f.Format("2019-06-24 15:15:15", nil)
//	fmt.Println(res) // Jun 24
//
// A Formatter is immutable once built (apart from WithHooks, which must be
// called before use) and safe for concurrent use.
type Formatter struct {
	parser        DateParser
	formats       *Registry
	defaultFormat string
	hooks         HookDispatcher
}

// NewFormatter creates a Formatter. A nil parser is replaced by NewParser().
// The custom registry is copied, later changes to it have no effect.
func NewFormatter(parser DateParser, cfg Config) *Formatter {
	if parser == nil {
		parser = NewParser()
	}
	defaultFormat := cfg.DefaultFormat
	if defaultFormat == "" {
		defaultFormat = DefaultFormatName
	}
	return &Formatter{
		parser:        parser,
		formats:       Builtins().Merge(cfg.CustomFormats),
		defaultFormat: defaultFormat,
	}
}

// WithHooks attaches a dispatcher that receives AfterFormat and Error events.
func (f *Formatter) WithHooks(h HookDispatcher) *Formatter {
	f.hooks = h
	return f
}

// Parser returns the parser used by Format.
func (f *Formatter) Parser() DateParser {
	return f.parser
}

// DefaultFormat returns the format name used when no selector is given.
func (f *Formatter) DefaultFormat() string {
	return f.defaultFormat
}

// Formats returns every available format name: built-ins first, then custom
// formats in definition order.
func (f *Formatter) Formats() []string {
	return f.formats.Names()
}

// Format classifies date with [InputOf] and selector with [SelectorOf], then
// calls FormatInput.
func (f *Formatter) Format(date any, selector any) (*Result, error) {
	return f.FormatInput(InputOf(date), SelectorOf(selector))
}

// FormatInput parses in and renders it with the formats chosen by sel.
//
// Errors wrap ErrInvalidInput (from the parser), ErrUnknownFormat or
// ErrInvalidFormatSelector.
func (f *Formatter) FormatInput(in Input, sel Selector) (*Result, error) {
	start := time.Now()

	res, err := f.format(in, sel)
	if f.hooks != nil {
		if err != nil {
			f.hooks.FireError(ErrorEvent{Op: "format", Err: err})
		} else {
			f.hooks.FireAfterFormat(AfterFormatEvent{
				Input:    in,
				Selector: sel,
				Result:   res,
				Duration: time.Since(start),
			})
		}
	}
	return res, err
}

func (f *Formatter) format(in Input, sel Selector) (*Result, error) {
	t, err := f.parser.ParseInput(in, true)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}

	if sel == nil {
		sel = DefaultSelector{}
	}
	switch s := sel.(type) {
	case DefaultSelector:
		return f.single(*t, f.defaultFormat)
	case NameSelector:
		if string(s) == AllFormats {
			return f.multi(*t, f.formats.Names())
		}
		return f.single(*t, string(s))
	case NamesSelector:
		return f.multi(*t, s)
	case AllSelector:
		return f.multi(*t, f.formats.Names())
	case InvalidSelector:
		return nil, s.Err()
	default:
		return nil, fmt.Errorf("%w: unsupported selector %T", ErrInvalidFormatSelector, sel)
	}
}

func (f *Formatter) single(t time.Time, name string) (*Result, error) {
	spec, ok := f.formats.Get(name)
	if !ok {
		return nil, &UnknownFormatError{Name: name}
	}
	return singleResult(name, render(spec, t)), nil
}

func (f *Formatter) multi(t time.Time, names []string) (*Result, error) {
	res := multiResult(len(names))
	for _, name := range names {
		spec, ok := f.formats.Get(name)
		if !ok {
			return nil, &UnknownFormatError{Name: name}
		}
		res.set(name, render(spec, t))
	}
	return res, nil
}
