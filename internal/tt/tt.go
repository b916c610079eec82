// Package tt holds shared test helpers.
package tt

import (
	"sync"
	"testing"
	"time"

	"github.com/rickchristie/datefmt"
	"github.com/stretchr/testify/require"
)

// RefTime is the reference date used across tests: Monday 24 June 2019,
// 15:15:15 UTC (unix 1561389315).
var RefTime = time.Date(2019, time.June, 24, 15, 15, 15, 0, time.UTC)

// RecordingHook records every event it receives.
type RecordingHook struct {
	mu      sync.Mutex
	Parses  []datefmt.AfterParseEvent
	Formats []datefmt.AfterFormatEvent
	Errors  []datefmt.ErrorEvent
}

// OnAfterParse implements datefmt.AfterParseHook.
func (h *RecordingHook) OnAfterParse(e datefmt.AfterParseEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Parses = append(h.Parses, e)
}

// OnAfterFormat implements datefmt.AfterFormatHook.
func (h *RecordingHook) OnAfterFormat(e datefmt.AfterFormatEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Formats = append(h.Formats, e)
}

// OnError implements datefmt.ErrorHook.
func (h *RecordingHook) OnError(e datefmt.ErrorEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Errors = append(h.Errors, e)
}

// MustLocation loads an IANA location or fails the test.
func MustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

// MustFormat formats date with selector and fails the test on error.
func MustFormat(t *testing.T, f *datefmt.Formatter, date, selector any) *datefmt.Result {
	t.Helper()
	res, err := f.Format(date, selector)
	require.NoError(t, err)
	return res
}
