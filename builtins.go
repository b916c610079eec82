package datefmt

import (
	"strconv"
	"time"
)

// Built-in format names.
const (
	FormatAtom      = "atom"
	FormatRFC822    = "rfc822"
	FormatISO8601   = "iso8601"
	FormatCookie    = "cookie"
	FormatRSS       = "rss"
	FormatW3C       = "w3c"
	FormatDay       = "day"
	FormatMonth     = "month"
	FormatYear      = "year"
	FormatHour      = "hour"
	FormatMinute    = "minute"
	FormatSecond    = "second"
	FormatTimezone  = "timezone"
	FormatTimestamp = "timestamp"
)

// AllFormats is the reserved selector that requests every registered format.
const AllFormats = "_ALL_FORMATS"

// DefaultFormatName is used when a Formatter is configured without a default.
const DefaultFormatName = FormatAtom

// Layouts of the built-in date-time formats.
const (
	// LayoutAtom is ISO 8601 with a colon offset. Unlike time.RFC3339 it never
	// renders UTC as "Z".
	LayoutAtom = "2006-01-02T15:04:05-07:00"

	// LayoutRFC822 is RFC 822 with weekday, seconds and a numeric offset.
	LayoutRFC822 = "Mon, 02 Jan 06 15:04:05 -0700"

	// LayoutISO8601 is the legacy ISO 8601 variant with an offset without colon.
	LayoutISO8601 = "2006-01-02T15:04:05-0700"

	// LayoutCookie is the RFC 850 cookie date with a four-digit year. The
	// cookie format writes zones without an abbreviation as "+02:00" instead.
	LayoutCookie = "Monday, 02-Jan-2006 15:04:05 MST"

	// LayoutRSS is the RSS 2.0 date, RFC 822 with a four-digit year.
	LayoutRSS = time.RFC1123Z

	// LayoutW3C is the W3C date-time profile of ISO 8601.
	LayoutW3C = LayoutAtom
)

// Builtins returns a fresh Registry holding the built-in formats in their
// canonical order. Callers may modify the returned registry.
func Builtins() *Registry {
	return NewRegistry().
		Register(FormatAtom, Layout(LayoutAtom)).
		Register(FormatRFC822, Layout(LayoutRFC822)).
		Register(FormatISO8601, Layout(LayoutISO8601)).
		Register(FormatCookie, Func(cookieDate)).
		Register(FormatRSS, Layout(LayoutRSS)).
		Register(FormatW3C, Layout(LayoutW3C)).
		Register(FormatDay, Layout("02")).
		Register(FormatMonth, Layout("01")).
		Register(FormatYear, Layout("2006")).
		Register(FormatHour, Layout("15")).
		Register(FormatMinute, Layout("04")).
		Register(FormatSecond, Layout("05")).
		Register(FormatTimezone, Func(timezoneName)).
		Register(FormatTimestamp, Func(unixSeconds))
}

// timezoneName returns the location name, or the numeric offset for unnamed
// fixed zones.
func timezoneName(t time.Time) string {
	if name := t.Location().String(); name != "" {
		return name
	}
	return t.Format("-07:00")
}

// cookieDate renders LayoutCookie, with a colon offset for unnamed zones.
func cookieDate(t time.Time) string {
	if name, _ := t.Zone(); name == "" {
		return t.Format(layoutCookieOffset)
	}
	return t.Format(LayoutCookie)
}

const layoutCookieOffset = "Monday, 02-Jan-2006 15:04:05 -07:00"

func unixSeconds(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
