package datefmt

import (
	"fmt"
	"math"
	"time"
)

// TimeProvider is the clock used to resolve relative phrases such as "now",
// "tomorrow" or "3 days ago". Inject a [MockTimeProvider] in tests.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time
}

// DefaultTimeProvider is the standard TimeProvider using the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

// Now returns the current system time.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a TimeProvider that returns a fixed time.
//
// SetTime is not synchronized. Set the time before sharing the provider.
type MockTimeProvider struct {
	fixedTime time.Time
}

// NewMockTimeProvider creates a MockTimeProvider with the given fixed time.
func NewMockTimeProvider(t time.Time) *MockTimeProvider {
	return &MockTimeProvider{fixedTime: t}
}

// SetTime updates the fixed time returned by Now().
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.fixedTime = t
}

// Now returns the fixed time.
func (m *MockTimeProvider) Now() time.Time {
	return m.fixedTime
}

// RelativeTo returns a [Func] format that renders a date relative to the
// provider's current day: "today", "tomorrow", "yesterday", "in 3 days",
// "2 days ago". The [Parser] accepts the same phrases.
//
// Example:
//
//	custom := datefmt.NewRegistry().
//	    Register("relative", datefmt.RelativeTo(datefmt.NewDefaultTimeProvider()))
func RelativeTo(tp TimeProvider) Func {
	return func(t time.Time) string {
		return relativeDate(tp.Now(), t)
	}
}

// relativeDate computes the relative date string between now and t.
func relativeDate(now, t time.Time) string {
	// Compare calendar days in t's location.
	now = now.In(t.Location())
	nowDate := startOfDay(now)
	tDate := startOfDay(t)

	// Days around a DST change are 23 or 25 hours long.
	days := int(math.Round(tDate.Sub(nowDate).Hours() / 24))

	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	case -1:
		return "yesterday"
	default:
		if days > 1 {
			return formatDays(days, "in %d day", "in %d days")
		}
		return formatDays(-days, "%d day ago", "%d days ago")
	}
}

func formatDays(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf(singular, n)
	}
	return fmt.Sprintf(plural, n)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Compile-time checks.
var (
	_ TimeProvider = (*DefaultTimeProvider)(nil)
	_ TimeProvider = (*MockTimeProvider)(nil)
)
