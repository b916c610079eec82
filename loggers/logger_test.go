package loggers

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rickchristie/datefmt"
	"github.com/rickchristie/datefmt/hooks"
)

var clock = datefmt.NewMockTimeProvider(time.Date(2025, 2, 15, 14, 30, 0, 0, time.UTC))

// body returns the YAML document following the single event header in out.
func body(t *testing.T, out string, name string) map[string]any {
	t.Helper()
	header := "\n>>> [" + name + "]: 2025-02-15 14:30:00.000\n"
	require.True(t, strings.HasPrefix(out, header), "unexpected output: %q", out)

	var data map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(strings.TrimPrefix(out, header)), &data))
	return data
}

func TestLoggerHook_OnAfterParse(t *testing.T) {
	ts := time.Date(2019, 6, 24, 15, 15, 15, 0, time.UTC)

	tests := []struct {
		name     string
		event    datefmt.AfterParseEvent
		expected map[string]any
	}{
		{
			name: "string input",
			event: datefmt.AfterParseEvent{
				Input:        datefmt.StringInput("2019-06-24 15:15:15"),
				AllowAbsence: true,
				Result:       &ts,
			},
			expected: map[string]any{
				"input_kind":    "string",
				"allow_absence": true,
				"input":         "2019-06-24 15:15:15",
				"result":        "2019-06-24T15:15:15+00:00",
			},
		},
		{
			name: "absent input",
			event: datefmt.AfterParseEvent{
				Input:        datefmt.AbsentInput{},
				AllowAbsence: true,
			},
			expected: map[string]any{
				"input_kind":    "absent",
				"allow_absence": true,
			},
		},
		{
			name: "invalid input",
			event: datefmt.AfterParseEvent{
				Input: datefmt.InvalidInput{Value: 42},
				Err:   errors.New("bad"),
			},
			expected: map[string]any{
				"input_kind":    "invalid",
				"allow_absence": false,
				"input":         "int(42)",
				"error":         "bad",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewLoggerHookWithWriter(&buf).WithTimeProvider(clock)

			h.OnAfterParse(tc.event)

			assert.Equal(t, tc.expected, body(t, buf.String(), "AfterParse"))
		})
	}
}

func TestLoggerHook_OnAfterFormat(t *testing.T) {
	var buf bytes.Buffer
	h := NewLoggerHookWithWriter(&buf).WithTimeProvider(clock)

	f := datefmt.NewFormatter(nil, datefmt.Config{}).WithHooks(hooks.NewRegistry().Register(h))
	_, err := f.Format("2019-06-24 15:15:15", []string{"year", "day"})
	require.NoError(t, err)

	data := body(t, buf.String(), "AfterFormat")
	assert.Equal(t, "string", data["input_kind"])
	assert.Equal(t, "names", data["selector"])
	assert.Equal(t, "2019-06-24 15:15:15", data["input"])
	assert.Equal(t, []any{"year", "day"}, data["formats"])
	assert.Equal(t, map[string]any{"year": "2019", "day": "24"}, data["result"])
	assert.NotEmpty(t, data["duration"])
}

func TestLoggerHook_OnAfterFormat_Absent(t *testing.T) {
	var buf bytes.Buffer
	h := NewLoggerHookWithWriter(&buf).WithTimeProvider(clock)

	h.OnAfterFormat(datefmt.AfterFormatEvent{
		Input:    datefmt.AbsentInput{},
		Selector: datefmt.AllSelector{},
	})

	data := body(t, buf.String(), "AfterFormat")
	assert.Equal(t, "all", data["selector"])
	assert.Contains(t, data, "result")
	assert.Nil(t, data["result"])
	assert.NotContains(t, data, "formats")
}

func TestLoggerHook_OnError(t *testing.T) {
	var buf bytes.Buffer
	h := NewLoggerHookWithWriter(&buf).WithTimeProvider(clock)

	h.OnError(datefmt.ErrorEvent{Op: "format", Err: &datefmt.UnknownFormatError{Name: "nope"}})

	assert.Equal(t, map[string]any{
		"op":    "format",
		"error": `unknown format: "nope" not found in available formats`,
	}, body(t, buf.String(), "Error"))
}

func TestSelectorName(t *testing.T) {
	tests := []struct {
		input    datefmt.Selector
		expected string
	}{
		{input: nil, expected: "default"},
		{input: datefmt.DefaultSelector{}, expected: "default"},
		{input: datefmt.NameSelector("atom"), expected: "name"},
		{input: datefmt.NamesSelector{"atom"}, expected: "names"},
		{input: datefmt.AllSelector{}, expected: "all"},
		{input: datefmt.InvalidSelector{Reason: "got int"}, expected: "invalid: got int"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, selectorName(tc.input))
		})
	}
}
