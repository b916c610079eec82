package datefmt

import (
	"fmt"
	"time"
)

// InputKind identifies which branch of the Input sum type a value belongs to.
type InputKind int

const (
	InputAbsent InputKind = iota
	InputString
	InputTime
	InputInvalid
)

// String returns the kind name used in events and log output.
func (k InputKind) String() string {
	switch k {
	case InputAbsent:
		return "absent"
	case InputString:
		return "string"
	case InputTime:
		return "time"
	case InputInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("InputKind(%d)", int(k))
	}
}

// Input is the value handed to a [Parser]. It is a closed set of four cases:
//
//   - [AbsentInput]: no date was given
//   - [StringInput]: a date string to interpret
//   - [TimeInput]: an already-parsed time, passed through unchanged
//   - [InvalidInput]: anything else, always rejected
//
// Use [InputOf] to classify an arbitrary value.
type Input interface {
	Kind() InputKind
}

// AbsentInput means "no date". It is not an error.
type AbsentInput struct{}

// Kind implements Input.
func (AbsentInput) Kind() InputKind { return InputAbsent }

// StringInput is a date string, e.g. "2019-06-24 15:15:15" or "January 5th, 2010".
type StringInput string

// Kind implements Input.
func (StringInput) Kind() InputKind { return InputString }

// TimeInput wraps an already-parsed time. The pointer is returned as-is by the
// parser, so callers holding it observe identity. A nil Time is treated as absent.
type TimeInput struct {
	Time *time.Time
}

// Kind implements Input.
func (in TimeInput) Kind() InputKind {
	if in.Time == nil {
		return InputAbsent
	}
	return InputTime
}

// InvalidInput carries a value that is neither absent, a string, nor a time.
type InvalidInput struct {
	Value any
}

// Kind implements Input.
func (InvalidInput) Kind() InputKind { return InputInvalid }

// InputOf classifies a dynamic value:
//
//	nil, (*time.Time)(nil) -> AbsentInput
//	string                 -> StringInput
//	time.Time, *time.Time  -> TimeInput
//	Input                  -> returned unchanged
//	anything else          -> InvalidInput
func InputOf(v any) Input {
	switch v := v.(type) {
	case nil:
		return AbsentInput{}
	case Input:
		return v
	case string:
		return StringInput(v)
	case *time.Time:
		if v == nil {
			return AbsentInput{}
		}
		return TimeInput{Time: v}
	case time.Time:
		return TimeInput{Time: &v}
	default:
		return InvalidInput{Value: v}
	}
}

// Compile-time checks.
var (
	_ Input = AbsentInput{}
	_ Input = StringInput("")
	_ Input = TimeInput{}
	_ Input = InvalidInput{}
)
