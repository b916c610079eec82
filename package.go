// Package datefmt parses mixed date input and renders it with named formats.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/rickchristie/datefmt"
//	)
//
//	func main() {
//	    f := datefmt.NewFormatter(datefmt.NewParser(), datefmt.Config{})
//
//	    // Default format ("atom")
//	    res, _ := f.Format("2019-06-24 15:15:15", nil)
//	    fmt.Println(res) // 2019-06-24T15:15:15+00:00
//
//	    // Several formats at once, in request order
//	    res, _ = f.Format("January 5th, 2010", []string{"day", "month", "year"})
//	    fmt.Println(res.Map()) // map[day:05 month:01 year:2010]
//
//	    // Absent input is not an error
//	    res, err := f.Format(nil, "rfc822")
//	    fmt.Println(res.IsAbsent(), err) // true <nil>
//	}
//
// # Parsing
//
// [Parser] accepts three kinds of input, modelled by the [Input] sum type:
//
//   - nothing ([AbsentInput]): returns nil, or fails when absence is not allowed
//   - a string ([StringInput]): interpreted free-form, see [Parser]
//   - a time ([TimeInput]): returned unchanged
//
// Anything else fails with [ErrInvalidInput]. [InputOf] maps dynamic values onto
// these cases, so Parse(false) or Parse(struct{}{}) is an error, not a panic.
//
// # Formats
//
// A format is a named [Spec]. Built-in formats:
//
//	atom       2019-06-24T15:15:15+00:00
//	rfc822     Mon, 24 Jun 19 15:15:15 +0000
//	iso8601    2019-06-24T15:15:15+0000
//	cookie     Monday, 24-Jun-2019 15:15:15 UTC
//	rss        Mon, 24 Jun 2019 15:15:15 +0000
//	w3c        2019-06-24T15:15:15+00:00
//	day        24
//	month      06
//	year       2019
//	hour       15
//	minute     15
//	second     15
//	timezone   UTC
//	timestamp  1561389315
//
// Custom formats are supplied through [Config.CustomFormats] as a [Registry]
// and may use Go layouts ([Layout]), strftime patterns ([Strftime]), Joda
// patterns ([Joda]) or plain functions ([Func]). A custom format with a
// built-in name replaces the built-in.
//
// # Errors
//
// All failures are immediate and wrap one of:
//
//   - [ErrInvalidInput]: the input is not absent, a string, or a time, or the
//     string cannot be parsed, or absence was not allowed
//   - [ErrUnknownFormat]: a requested name is not registered, see [UnknownFormatError]
//   - [ErrInvalidFormatSelector]: the selector is not a name or a list of names
//
// # Observability
//
// Parser and Formatter are silent by default. Attach a hooks.Registry with
// WithHooks to receive [AfterParseEvent], [AfterFormatEvent] and [ErrorEvent];
// the loggers package provides a hook that writes every event as YAML.
//
// # Wiring
//
// The provider package registers a parser and formatter in a service container
// under "date/parser" and "date/formatter", configured from
// "date/custom-formats" and "date/default-format". The config package loads
// these settings from YAML and the environment.
package datefmt
