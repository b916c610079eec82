package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickchristie/datefmt"
	"github.com/rickchristie/datefmt/provider"
	"github.com/rickchristie/datefmt/schema"
)

const fullConfig = `
default_format: short
location: Europe/Paris
month_first: false
relative_phrases: false
custom_formats:
  short: "Jan 2"
  ymd:
    strftime: "%Y/%m/%d"
  european:
    joda: "dd/MM/yyyy"
  kitchen:
    layout: "3:04PM"
server:
  addr: "127.0.0.1:9090"
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "short", cfg.DefaultFormat)
	assert.Equal(t, "Europe/Paris", cfg.Location)
	require.NotNil(t, cfg.MonthFirst)
	assert.False(t, *cfg.MonthFirst)
	require.NotNil(t, cfg.RelativePhrases)
	assert.False(t, *cfg.RelativePhrases)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, []string{"short", "ymd", "european", "kitchen"}, cfg.CustomFormats.Names())

	spec, ok := cfg.CustomFormats.Get("ymd")
	require.True(t, ok)
	assert.Equal(t, datefmt.Strftime("%Y/%m/%d"), spec)
}

func TestParse_Defaults(t *testing.T) {
	for _, input := range []string{"", "# nothing here\n", "{}"} {
		cfg, err := Parse([]byte(input))
		require.NoError(t, err, "input %q", input)

		assert.Equal(t, datefmt.DefaultFormatName, cfg.DefaultFormat)
		assert.Equal(t, "", cfg.Location)
		assert.Nil(t, cfg.MonthFirst)
		assert.Nil(t, cfg.RelativePhrases)
		assert.Equal(t, DefaultAddr, cfg.Server.Addr)
		assert.Equal(t, 0, cfg.CustomFormats.Len())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		isSchema bool
		contains string
	}{
		{
			name:     "invalid YAML",
			input:    "default_format: [",
			contains: "invalid YAML",
		},
		{
			name:     "unknown key",
			input:    "default_fromat: atom\n",
			isSchema: true,
		},
		{
			name:     "wrong type",
			input:    "month_first: maybe\n",
			isSchema: true,
		},
		{
			name:     "empty default format",
			input:    "default_format: \"\"\n",
			isSchema: true,
		},
		{
			name:     "unknown dialect",
			input:    "custom_formats:\n  short:\n    python: \"%b\"\n",
			isSchema: true,
		},
		{
			name:     "unknown default format",
			input:    "default_format: nope\n",
			contains: `"nope" not found`,
		},
		{
			name:     "unknown location",
			input:    "location: Mars/Olympus_Mons\n",
			contains: "location",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.input))
			require.Error(t, err)
			assert.Nil(t, cfg)

			if tc.isSchema {
				var verr *schema.ValidationError
				assert.True(t, errors.As(err, &verr), "got %v", err)
			}
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestParse_DefaultFormatMayBeCustom(t *testing.T) {
	_, err := Parse([]byte("default_format: short\ncustom_formats:\n  short: \"Jan 2\"\n"))
	assert.NoError(t, err)

	_, err = Parse([]byte("default_format: short\n"))
	assert.ErrorIs(t, err, datefmt.ErrUnknownFormat)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDefaultFormat: "rfc822",
		EnvLocation:      "Asia/Tokyo",
		EnvMonthFirst:    "false",
		EnvAddr:          ":9999",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))

	assert.Equal(t, "rfc822", cfg.DefaultFormat)
	assert.Equal(t, "Asia/Tokyo", cfg.Location)
	require.NotNil(t, cfg.MonthFirst)
	assert.False(t, *cfg.MonthFirst)
	assert.Equal(t, ":9999", cfg.Server.Addr)

	env[EnvMonthFirst] = "sometimes"
	err := Default().applyEnv(lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMonthFirst)
}

func TestApplyEnv_EmptyValuesAreIgnored(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.applyEnv(func(string) (string, bool) { return "", true }))
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datefmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_format: rss\n"), 0o644))

	t.Setenv(EnvAddr, ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rss", cfg.DefaultFormat)
	assert.Equal(t, ":7070", cfg.Server.Addr)

	t.Setenv(EnvDefaultFormat, "w3c")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "w3c", cfg.DefaultFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_NewParser(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	p, err := cfg.NewParser()
	require.NoError(t, err)

	// Day-first and Paris time.
	got, err := p.Parse("05/01/2010 12:00")
	require.NoError(t, err)
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 5, got.Day())
	assert.Equal(t, 11, got.UTC().Hour())

	// Relative phrases are disabled.
	_, err = p.Parse("tomorrow")
	assert.ErrorIs(t, err, datefmt.ErrInvalidInput)
}

func TestConfig_Register(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	c := provider.NewContainer().
		Register(provider.ServiceProvider{}).
		Register(cfg)

	f, err := provider.Formatter(c)
	require.NoError(t, err)

	assert.Equal(t, "short", f.DefaultFormat())
	assert.Contains(t, f.Formats(), "european")

	res, err := f.Format("05/01/2010", nil)
	require.NoError(t, err)
	assert.Equal(t, "Jan 5", res.String())
}

func TestConfig_NewFormatter(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	f, err := cfg.NewFormatter()
	require.NoError(t, err)

	res, err := f.Format("05/01/2010", []string{"european", "ymd"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"european": "05/01/2010", "ymd": "2010/01/05"}, res.Map())

	cfg.Location = "Mars/Olympus_Mons"
	_, err = cfg.NewFormatter()
	assert.Error(t, err)
}

func TestConfig_FormatterConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	fc := cfg.FormatterConfig()
	assert.Equal(t, "short", fc.DefaultFormat)
	assert.Same(t, cfg.CustomFormats, fc.CustomFormats)
}
