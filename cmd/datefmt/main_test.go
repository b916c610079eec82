package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickchristie/datefmt"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "default format",
			args:     []string{"2019-06-24 15:15:15"},
			expected: "2019-06-24T15:15:15+00:00\n",
		},
		{
			name:     "single format",
			args:     []string{"2019-06-24 15:15:15", "timestamp"},
			expected: "1561389315\n",
		},
		{
			name:     "several formats are aligned",
			args:     []string{"January 5th, 2010", "day", "month", "year"},
			expected: "day    05\nmonth  01\nyear   2010\n",
		},
		{
			name:     "json",
			args:     []string{"-json", "January 5th, 2010", "year", "day"},
			expected: "{\"year\":\"2010\",\"day\":\"05\"}\n",
		},
		{
			name:     "json single",
			args:     []string{"-json", "2019-06-24 15:15:15", "rfc822"},
			expected: "\"Mon, 24 Jun 19 15:15:15 +0000\"\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tc.args, &stdout, &stderr)
			require.NoError(t, err, stderr.String())
			assert.Equal(t, tc.expected, stdout.String())
		})
	}
}

func TestRun_All(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-all", "2019-06-24 15:15:15"}, &stdout, &stderr))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 14)
	assert.Equal(t, "timestamp  1561389315", lines[13])
}

func TestRun_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datefmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_format: european
month_first: false
custom_formats:
  european:
    joda: "yyyy-MM-dd"
`), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", path, "05/01/2010"}, &stdout, &stderr))
	assert.Equal(t, "2010-01-05\n", stdout.String())
}

func TestRun_Verbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-v", "2019-06-24 15:15:15", "year"}, &stdout, &stderr))

	assert.Equal(t, "2019\n", stdout.String())
	assert.Contains(t, stderr.String(), ">>> [AfterParse]")
	assert.Contains(t, stderr.String(), ">>> [AfterFormat]")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{name: "no date", args: nil, contains: "missing date argument"},
		{name: "invalid date", args: []string{"--", "-invalid"}, contains: "invalid date input"},
		{name: "unknown format", args: []string{"2019-06-24", "nope"}, contains: `"nope" not found`},
		{name: "bad flag", args: []string{"-nope"}, contains: "flag provided but not defined"},
		{name: "missing config", args: []string{"-config", "/does/not/exist.yaml", "2019-06-24"}, contains: "failed to read config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tc.args, &stdout, &stderr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestSplitInteractive(t *testing.T) {
	tests := []struct {
		input    string
		date     string
		selector any
	}{
		{input: "2019-06-24", date: "2019-06-24", selector: nil},
		{input: "2019-06-24 |", date: "2019-06-24", selector: nil},
		{input: "January 5th, 2010 | day", date: "January 5th, 2010", selector: "day"},
		{input: "tomorrow | day, month ,year", date: "tomorrow", selector: []string{"day", "month", "year"}},
		{input: "now | _ALL_FORMATS", date: "now", selector: datefmt.AllFormats},
		{input: "now | , ,", date: "now", selector: nil},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			date, selector := splitInteractive(tc.input)
			assert.Equal(t, tc.date, date)
			assert.Equal(t, tc.selector, selector)
		})
	}
}

func TestPrintResult_Absent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, nil, false))
	assert.Equal(t, "(absent)\n", buf.String())

	buf.Reset()
	require.NoError(t, printResult(&buf, nil, true))
	assert.Equal(t, "null\n", buf.String())
}

func TestNewServer(t *testing.T) {
	e := newServer(datefmt.NewFormatter(nil, datefmt.Config{}))

	req := httptest.NewRequest(http.MethodGet, "/format?date=2019-06-24&format=year", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"result":"2019"}`, strings.TrimSpace(rec.Body.String()))
}
