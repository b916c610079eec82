// Package config loads formatter settings from a YAML file and the environment.
//
// # File Format
//
//	default_format: rfc822
//	location: Europe/Paris
//	month_first: false
//	relative_phrases: true
//	custom_formats:
//	  short: "Jan 2"
//	  ymd:
//	    strftime: "%Y/%m/%d"
//	  european:
//	    joda: "dd/MM/yyyy"
//	server:
//	  addr: ":8080"
//
// The file is validated against a JSON Schema before decoding. Every key is
// optional.
//
// # Environment
//
// Variables override the file. A .env file in the working directory is loaded
// first if present; variables already set in the process win over it.
//
//	DATEFMT_DEFAULT_FORMAT  default_format
//	DATEFMT_LOCATION        location
//	DATEFMT_MONTH_FIRST     month_first ("true"/"false")
//	DATEFMT_ADDR            server.addr
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rickchristie/datefmt"
	"github.com/rickchristie/datefmt/provider"
	"github.com/rickchristie/datefmt/schema"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvDefaultFormat = "DATEFMT_DEFAULT_FORMAT"
	EnvLocation      = "DATEFMT_LOCATION"
	EnvMonthFirst    = "DATEFMT_MONTH_FIRST"
	EnvAddr          = "DATEFMT_ADDR"
)

// DefaultAddr is the HTTP listen address when none is configured.
const DefaultAddr = ":8080"

// Config is the complete application configuration.
type Config struct {
	DefaultFormat   string            `yaml:"default_format"`
	Location        string            `yaml:"location"`
	MonthFirst      *bool             `yaml:"month_first"`
	RelativePhrases *bool             `yaml:"relative_phrases"`
	CustomFormats   *datefmt.Registry `yaml:"custom_formats"`
	Server          ServerConfig      `yaml:"server"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

var fileSchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
	"default_format":   schema.String("Format used when no selector is given").MinLength(1),
	"location":         schema.String("IANA zone for strings without zone information"),
	"month_first":      schema.Boolean("Read 01/02/2006 as January 2"),
	"relative_phrases": schema.Boolean("Accept phrases such as tomorrow or 3 days ago"),
	"custom_formats": schema.Nested("Custom formats by name", schema.MapOf(
		map[string]any{"type": "string"},
		schema.Object(map[string]*schema.Property{
			"layout": schema.String("Go reference layout"),
		}, "layout"),
		schema.Object(map[string]*schema.Property{
			"strftime": schema.String("C-style strftime pattern"),
		}, "strftime"),
		schema.Object(map[string]*schema.Property{
			"joda": schema.String("Joda-Time pattern"),
		}, "joda"),
	)),
	"server": schema.Nested("HTTP server", schema.Object(map[string]*schema.Property{
		"addr": schema.String("Listen address").MinLength(1),
	})),
}))

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultFormat: datefmt.DefaultFormatName,
		CustomFormats: datefmt.NewRegistry(),
		Server:        ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads .env (if present), the YAML file at path (skipped when path is
// empty) and the environment, in that order of increasing precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates YAML configuration without touching the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		return nil
	}

	normalized, err := schema.Normalize(doc)
	if err != nil {
		return err
	}
	if err := fileSchema.Validate(normalized); err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDefaultFormat); ok && v != "" {
		c.DefaultFormat = v
	}
	if v, ok := lookup(EnvLocation); ok && v != "" {
		c.Location = v
	}
	if v, ok := lookup(EnvMonthFirst); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMonthFirst, err)
		}
		c.MonthFirst = &b
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	return nil
}

// Validate checks settings that the schema cannot: the location must exist and
// the default format must be registered.
func (c *Config) Validate() error {
	if _, err := c.location(); err != nil {
		return err
	}
	name := c.DefaultFormat
	if name == "" {
		name = datefmt.DefaultFormatName
	}
	if !datefmt.Builtins().Merge(c.CustomFormats).Has(name) {
		return fmt.Errorf("default_format: %w", &datefmt.UnknownFormatError{Name: name})
	}
	return nil
}

func (c *Config) location() (*time.Location, error) {
	if c.Location == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	return loc, nil
}

// NewParser builds a parser with the configured location and preferences.
func (c *Config) NewParser() (*datefmt.Parser, error) {
	loc, err := c.location()
	if err != nil {
		return nil, err
	}
	p := datefmt.NewParser().WithLocation(loc)
	if c.MonthFirst != nil {
		p.WithMonthFirst(*c.MonthFirst)
	}
	if c.RelativePhrases != nil {
		p.WithRelativePhrases(*c.RelativePhrases)
	}
	return p, nil
}

// FormatterConfig returns the formatter settings.
func (c *Config) FormatterConfig() datefmt.Config {
	return datefmt.Config{
		CustomFormats: c.CustomFormats,
		DefaultFormat: c.DefaultFormat,
	}
}

// NewFormatter builds a formatter without going through a container.
func (c *Config) NewFormatter() (*datefmt.Formatter, error) {
	p, err := c.NewParser()
	if err != nil {
		return nil, err
	}
	return datefmt.NewFormatter(p, c.FormatterConfig()), nil
}

// Register implements provider.Provider. It overrides the service provider's
// defaults with this configuration, so register it after provider.ServiceProvider.
func (c *Config) Register(container *provider.Container) {
	custom := c.CustomFormats
	if custom == nil {
		custom = datefmt.NewRegistry()
	}
	defaultFormat := c.DefaultFormat
	if defaultFormat == "" {
		defaultFormat = datefmt.DefaultFormatName
	}

	container.Set(provider.KeyCustomFormats, custom)
	container.Set(provider.KeyDefaultFormat, defaultFormat)
	container.Factory(provider.KeyParser, func(*provider.Container) (any, error) {
		return c.NewParser()
	})
}

// Compile-time check that Config implements provider.Provider.
var _ provider.Provider = (*Config)(nil)
