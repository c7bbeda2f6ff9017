package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for file discovery:
// - Include globs match nested and root-level files
// - Ignore globs prune files and whole directories
// - The .parsee directory is always ignored
// - Invalid globs fail compilation up front

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("const x = 1;"), 0o644))
}

func TestDiscovery_IncludeAndIgnore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.ts"))
	writeFile(t, filepath.Join(dir, "src", "app.tsx"))
	writeFile(t, filepath.Join(dir, "src", "notes.md"))
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "dep.ts"))
	writeFile(t, filepath.Join(dir, ".parsee", "cached.ts"))

	fd, err := newFileDiscovery(dir,
		[]string{"**/*.ts", "**/*.tsx"},
		[]string{"node_modules/**"},
	)
	require.NoError(t, err)

	files, err := fd.discover()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "index.ts"),
		filepath.Join(dir, "src", "app.tsx"),
	}, files)
}

func TestDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := newFileDiscovery(t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)
}

func TestMergeFieldFlags(t *testing.T) {
	t.Parallel()

	merged, err := mergeFieldFlags(nil, []string{"doc=never", "name=only"})
	require.NoError(t, err)
	assert.Len(t, merged, 2)

	// Unknown names are skipped with a log line, not an error.
	merged, err = mergeFieldFlags(nil, []string{"bogus=never"})
	require.NoError(t, err)
	assert.Empty(t, merged)

	_, err = mergeFieldFlags(nil, []string{"missing-equals"})
	assert.Error(t, err)
}
