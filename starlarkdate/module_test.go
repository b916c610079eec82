package starlarkdate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"

	"github.com/rickchristie/datefmt"
)

func exec(t *testing.T, src string) (starlark.StringDict, error) {
	t.Helper()
	custom := datefmt.NewRegistry().Register("ymd", datefmt.Strftime("%Y/%m/%d"))
	f := datefmt.NewFormatter(nil, datefmt.Config{CustomFormats: custom})

	thread := &starlark.Thread{Name: t.Name()}
	predeclared := starlark.StringDict{
		"date": NewModule(f),
		"time": starlarktime.Module,
	}
	return starlark.ExecFile(thread, "test.star", src, predeclared)
}

func TestModule(t *testing.T) {
	globals, err := exec(t, `
d = date.parse("January 5th, 2010")
kind = type(d)
parts = date.format(d, ["day", "month", "year"])
stamp = date.format("2019-06-24 15:15:15", "timestamp")
atom = date.format(time.parse_time("2019-06-24T15:15:15Z"))
custom = date.format("2019-06-24", "ymd")
everything = date.format("2019-06-24", date.ALL_FORMATS)
tupled = date.format("2019-06-24", ("year", "month"))
absent = date.format(None, "atom")
parsed_absent = date.parse(None)
passthrough = date.parse(time.parse_time("2001-02-03T00:00:00Z")) == time.parse_time("2001-02-03T00:00:00Z")
names = date.formats()
default = date.DEFAULT_FORMAT
`)
	require.NoError(t, err)

	tests := []struct {
		global   string
		expected string
	}{
		{global: "kind", expected: `"time.time"`},
		{global: "parts", expected: `{"day": "05", "month": "01", "year": "2010"}`},
		{global: "stamp", expected: `"1561389315"`},
		{global: "atom", expected: `"2019-06-24T15:15:15+00:00"`},
		{global: "custom", expected: `"2019/06/24"`},
		{global: "tupled", expected: `{"year": "2019", "month": "06"}`},
		{global: "absent", expected: "None"},
		{global: "parsed_absent", expected: "None"},
		{global: "passthrough", expected: "True"},
		{global: "default", expected: `"atom"`},
	}

	for _, tc := range tests {
		t.Run(tc.global, func(t *testing.T) {
			v, ok := globals[tc.global]
			require.True(t, ok)
			assert.Equal(t, tc.expected, v.String())
		})
	}

	everything, ok := globals["everything"].(*starlark.Dict)
	require.True(t, ok)
	assert.Equal(t, 15, everything.Len())

	names, ok := globals["names"].(*starlark.List)
	require.True(t, ok)
	assert.Equal(t, 15, names.Len())
	assert.Equal(t, starlark.String("ymd"), names.Index(14))
}

func TestModule_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{
			name:     "absence not allowed",
			src:      `date.parse(None, allow_none=False)`,
			contains: "absence not allowed",
		},
		{
			name:     "unparseable string",
			src:      `date.parse("-invalid")`,
			contains: "invalid date input",
		},
		{
			name:     "not a date",
			src:      `date.format(42)`,
			contains: "invalid date input",
		},
		{
			name:     "unknown format",
			src:      `date.format("2019-06-24", "doesnotexist")`,
			contains: `"doesnotexist" not found`,
		},
		{
			name:     "number selector",
			src:      `date.format("2019-06-24", 123)`,
			contains: "invalid format selector",
		},
		{
			name:     "mixed selector list",
			src:      `date.format("2019-06-24", ["day", 1])`,
			contains: "each entry must be a name",
		},
		{
			name:     "formats takes no arguments",
			src:      `date.formats(1)`,
			contains: "date.formats",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := exec(t, tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestLoadModule(t *testing.T) {
	f := datefmt.NewFormatter(nil, datefmt.Config{DefaultFormat: "year"})

	thread := &starlark.Thread{
		Name: t.Name(),
		Load: func(_ *starlark.Thread, module string) (starlark.StringDict, error) {
			require.Equal(t, "date", module)
			return LoadModule(f), nil
		},
	}
	globals, err := starlark.ExecFile(thread, "load.star", `
load("date", "date")
year = date.format("2019-06-24")
`, nil)
	require.NoError(t, err)
	assert.Equal(t, starlark.String("2019"), globals["year"])
}
