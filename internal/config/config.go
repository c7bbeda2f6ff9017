package config

import (
	"github.com/Kryft-Studios/parsee/projection"
)

// Config represents the complete parsee configuration.
// It can be loaded from .parsee/config.yml with environment variable overrides.
type Config struct {
	Fields map[string]string `yaml:"fields" mapstructure:"fields"` // field name → never|include|only
	Paths  PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Output OutputConfig      `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which files to extract and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// OutputConfig defines how extraction results are emitted.
type OutputConfig struct {
	Pretty bool   `yaml:"pretty" mapstructure:"pretty"` // indent JSON output
	Dir    string `yaml:"dir" mapstructure:"dir"`       // write per-file JSON here instead of stdout
}

// Default returns a configuration with sensible defaults: every field
// included, the usual TypeScript/JavaScript globs, compact JSON to stdout.
func Default() *Config {
	return &Config{
		Fields: map[string]string{},
		Paths: PathsConfig{
			Include: []string{
				"**/*.ts",
				"**/*.tsx",
				"**/*.mts",
				"**/*.cts",
				"**/*.js",
				"**/*.jsx",
				"**/*.mjs",
				"**/*.cjs",
			},
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				".git/**",
				"**/*.d.ts",
			},
		},
		Output: OutputConfig{
			Pretty: false,
			Dir:    "",
		},
	}
}

// Projection resolves the configured field modes into a projection config.
// Malformed modes degrade to include inside projection.Resolve; unknown
// field names are dropped here and reported by Warnings.
func (c *Config) Projection() projection.Config {
	cfg := make(projection.Config, len(c.Fields))
	for name, mode := range c.Fields {
		field := projection.Field(name)
		if !projection.Recognized(field) {
			continue
		}
		cfg[field] = projection.Mode(mode)
	}
	return cfg
}

// Warnings reports the configured field names that are not recognized
// projection fields. Unknown names never fail loading; they are surfaced so
// the CLI can log them.
func (c *Config) Warnings() []string {
	var warnings []string
	for name := range c.Fields {
		if !projection.Recognized(projection.Field(name)) {
			warnings = append(warnings, "unknown projection field: "+name)
		}
	}
	return warnings
}
