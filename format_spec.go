package datefmt

import (
	"time"

	"github.com/leekchan/timeutil"
	"github.com/vjeantet/jodaTime"
)

// Spec is a format specification: a rule for rendering a time as a string.
//
// The set of implementations is closed:
//
//   - [Layout]: a Go reference layout, rendered with time.Time.Format
//   - [Strftime]: a C-style pattern such as "%Y-%m-%d"
//   - [Joda]: a Joda/ISO pattern such as "yyyy-MM-dd"
//   - [Func]: any function of the time
type Spec interface {
	specKind() string
}

// Layout is a Go reference layout, e.g. "2006-01-02" or time.RFC1123Z.
type Layout string

// Strftime is a C-style strftime pattern, e.g. "%d/%m/%Y %H:%M".
type Strftime string

// Joda is a Joda-Time style pattern, e.g. "dd/MM/yyyy HH:mm".
type Joda string

// Func renders a time with arbitrary code.
type Func func(t time.Time) string

func (Layout) specKind() string   { return "layout" }
func (Strftime) specKind() string { return "strftime" }
func (Joda) specKind() string     { return "joda" }
func (Func) specKind() string     { return "func" }

// render applies spec to t. A nil Func or an unknown implementation renders
// as the empty string; Registry.Register rejects both so this is unreachable
// through the public API.
func render(spec Spec, t time.Time) string {
	switch s := spec.(type) {
	case Layout:
		return t.Format(string(s))
	case Strftime:
		return timeutil.Strftime(&t, string(s))
	case Joda:
		return jodaTime.Format(string(s), t)
	case Func:
		if s == nil {
			return ""
		}
		return s(t)
	default:
		return ""
	}
}
