package datefmt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateParser turns an [Input] into a time. A nil time with a nil error means
// the input was absent. [Parser] is the standard implementation.
type DateParser interface {
	ParseInput(in Input, allowAbsence bool) (*time.Time, error)
}

// Parser normalizes mixed input into a time.Time.
//
//   - absent input returns nil, or fails with ErrInvalidInput when absence is not allowed
//   - strings are interpreted free-form: ISO 8601, RFC 1123/2822, "January 5th, 2010",
//     "2019-06-24 15:15:15", unix timestamps, and relative phrases like "tomorrow"
//   - times are returned unchanged
//   - anything else fails with ErrInvalidInput
//
// Example:
//
//	parser := datefmt.NewParser().
//	    WithLocation(paris).
//	    WithMonthFirst(false)
//
//	t, err := parser.Parse("05/01/2010") // 5 January 2010, Paris time
//
// Configure a Parser before first use. Afterwards it is read-only and safe for
// concurrent use.
type Parser struct {
	location   *time.Location
	clock      TimeProvider
	monthFirst bool
	relative   bool
	hooks      HookDispatcher
}

// NewParser creates a Parser that reads zone-less strings as UTC, prefers
// month-first for ambiguous numeric dates, and resolves relative phrases
// against the system clock.
func NewParser() *Parser {
	return &Parser{
		clock:      NewDefaultTimeProvider(),
		monthFirst: true,
		relative:   true,
	}
}

// WithLocation sets the location for strings that carry no zone information.
// A nil location restores UTC.
func (p *Parser) WithLocation(loc *time.Location) *Parser {
	p.location = loc
	return p
}

// WithTimeProvider sets the clock used for relative phrases.
func (p *Parser) WithTimeProvider(tp TimeProvider) *Parser {
	p.clock = tp
	return p
}

// WithMonthFirst chooses between 01/02/2006 (true) and 02/01/2006 (false)
// for ambiguous numeric dates.
func (p *Parser) WithMonthFirst(monthFirst bool) *Parser {
	p.monthFirst = monthFirst
	return p
}

// WithRelativePhrases enables or disables relative phrases such as "now" or
// "3 days ago".
func (p *Parser) WithRelativePhrases(enabled bool) *Parser {
	p.relative = enabled
	return p
}

// WithHooks attaches a dispatcher that receives AfterParse and Error events.
func (p *Parser) WithHooks(h HookDispatcher) *Parser {
	p.hooks = h
	return p
}

// Parse classifies v with [InputOf] and parses it, allowing absence.
func (p *Parser) Parse(v any) (*time.Time, error) {
	return p.ParseInput(InputOf(v), true)
}

// ParseRequired is Parse with absence rejected.
func (p *Parser) ParseRequired(v any) (time.Time, error) {
	t, err := p.ParseInput(InputOf(v), false)
	if err != nil {
		return time.Time{}, err
	}
	return *t, nil
}

// ParseInput parses in. It returns (nil, nil) for absent input when
// allowAbsence is true.
func (p *Parser) ParseInput(in Input, allowAbsence bool) (*time.Time, error) {
	t, err := p.parse(in, allowAbsence)
	if p.hooks != nil {
		p.hooks.FireAfterParse(AfterParseEvent{
			Input:        in,
			AllowAbsence: allowAbsence,
			Result:       t,
			Err:          err,
		})
		if err != nil {
			p.hooks.FireError(ErrorEvent{Op: "parse", Err: err})
		}
	}
	return t, err
}

func (p *Parser) parse(in Input, allowAbsence bool) (*time.Time, error) {
	if in == nil || in.Kind() == InputAbsent {
		if !allowAbsence {
			return nil, fmt.Errorf("%w: absence not allowed", ErrInvalidInput)
		}
		return nil, nil
	}

	switch v := in.(type) {
	case TimeInput:
		return v.Time, nil
	case StringInput:
		t, err := p.parseString(string(v))
		if err != nil {
			return nil, err
		}
		return &t, nil
	case InvalidInput:
		return nil, notADate(v.Value, allowAbsence)
	default:
		return nil, notADate(in, allowAbsence)
	}
}

func notADate(v any, allowAbsence bool) error {
	expected := "a date/time or a string"
	if allowAbsence {
		expected = "absent, a date/time, or a string"
	}
	return fmt.Errorf("%w: %T is not a date/time, string, or absence (must be %s)", ErrInvalidInput, v, expected)
}

func (p *Parser) parseString(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: unparseable date string %q: empty", ErrInvalidInput, s)
	}

	if p.relative {
		t, ok, err := p.parseRelative(trimmed)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: unparseable date string %q: %v", ErrInvalidInput, s, err)
		}
		if ok {
			return t, nil
		}
	}

	loc := p.location
	if loc == nil {
		loc = time.UTC
	}
	t, err := dateparse.ParseIn(trimmed, loc, dateparse.PreferMonthFirst(p.monthFirst))
	if err != nil {
		// The dateparse error type stays internal.
		return time.Time{}, fmt.Errorf("%w: unparseable date string %q: %v", ErrInvalidInput, s, err)
	}
	return t, nil
}

// -----------------------------------------------------------------------------
// Relative phrases
// -----------------------------------------------------------------------------

var relativeOffset = regexp.MustCompile(
	`^(?:(in)\s+)?([+-]?\d+)\s*(sec|second|min|minute|hour|day|week|month|year)s?(?:\s+(ago))?$`,
)

// Largest offsets accepted per unit. Calendar units are capped at ten
// thousand years; clock units at what fits in a time.Duration.
var relativeLimits = map[string]int64{
	"sec":    math.MaxInt64 / int64(time.Second),
	"second": math.MaxInt64 / int64(time.Second),
	"min":    math.MaxInt64 / int64(time.Minute),
	"minute": math.MaxInt64 / int64(time.Minute),
	"hour":   math.MaxInt64 / int64(time.Hour),
	"day":    10000 * 366,
	"week":   10000 * 53,
	"month":  10000 * 12,
	"year":   10000,
}

// parseRelative resolves keywords ("now", "today", "midnight", "noon",
// "tomorrow", "yesterday") and offsets ("+2 days", "in 3 weeks", "1 hour ago").
// It reports false for strings that are not relative phrases, and an error for
// offsets too large to apply.
func (p *Parser) parseRelative(s string) (time.Time, bool, error) {
	clock := p.clock
	if clock == nil {
		clock = NewDefaultTimeProvider()
	}
	now := clock.Now()
	if p.location != nil {
		now = now.In(p.location)
	}

	lower := strings.ToLower(s)
	switch lower {
	case "now":
		return now, true, nil
	case "today", "midnight":
		return startOfDay(now), true, nil
	case "noon":
		return startOfDay(now).Add(12 * time.Hour), true, nil
	case "tomorrow":
		return startOfDay(now).AddDate(0, 0, 1), true, nil
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1), true, nil
	}

	m := relativeOffset.FindStringSubmatch(lower)
	if m == nil {
		return time.Time{}, false, nil
	}
	in, ago := m[1] != "", m[4] != ""
	if in && ago {
		return time.Time{}, false, nil
	}
	unit := m[3]
	n, err := strconv.ParseInt(strings.TrimPrefix(m[2], "+"), 10, 64)
	if err != nil || n > relativeLimits[unit] || n < -relativeLimits[unit] {
		return time.Time{}, false, fmt.Errorf("offset %s %s out of range", m[2], unit)
	}
	if ago {
		n = -n
	}

	switch unit {
	case "sec", "second":
		return now.Add(time.Duration(n) * time.Second), true, nil
	case "min", "minute":
		return now.Add(time.Duration(n) * time.Minute), true, nil
	case "hour":
		return now.Add(time.Duration(n) * time.Hour), true, nil
	case "day":
		return now.AddDate(0, 0, int(n)), true, nil
	case "week":
		return now.AddDate(0, 0, 7*int(n)), true, nil
	case "month":
		return now.AddDate(0, int(n), 0), true, nil
	case "year":
		return now.AddDate(int(n), 0, 0), true, nil
	}
	return time.Time{}, false, nil
}

// Compile-time check that Parser implements DateParser.
var _ DateParser = (*Parser)(nil)
