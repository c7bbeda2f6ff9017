package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kryft-Studios/parsee/projection"
)

// Test Plan for configuration:
// - Defaults cover the usual source globs with no projection modes
// - Config file values load and map onto projection config
// - Unknown field names surface as warnings, never as errors
// - Missing config file falls back to defaults
// - Projection drops unrecognized names

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Contains(t, cfg.Paths.Include, "**/*.ts")
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
	assert.Empty(t, cfg.Fields)
	assert.False(t, cfg.Output.Pretty)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Paths.Include, cfg.Paths.Include)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".parsee"), 0o755))
	yaml := `
fields:
  doc: never
  position: never
  typo_field: only
paths:
  include:
    - "src/**/*.ts"
output:
  pretty: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".parsee", "config.yml"), []byte(yaml), 0o644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/**/*.ts"}, cfg.Paths.Include)
	assert.True(t, cfg.Output.Pretty)

	proj := cfg.Projection()
	assert.Equal(t, projection.ModeNever, proj[projection.FieldDoc])
	assert.Equal(t, projection.ModeNever, proj[projection.FieldPosition])
	_, hasTypo := proj[projection.Field("typo_field")]
	assert.False(t, hasTypo)

	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "typo_field")
}

func TestProjection_MalformedModePassesThrough(t *testing.T) {
	t.Parallel()

	cfg := &Config{Fields: map[string]string{"doc": "sometimes"}}
	policy := projection.Resolve(cfg.Projection())
	// Malformed modes degrade to include inside Resolve.
	assert.True(t, policy.Keep(projection.FieldDoc))
	assert.False(t, policy.OnlyMode())
}
