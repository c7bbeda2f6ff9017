package parsers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for literal parsing:
// - Numeric forms: integer, float, negative, hex, separators
// - String escapes resolve, template strings without interpolation resolve
// - Booleans and null map to native values
// - Anything else falls back to truncated raw text

func literalOf(t *testing.T, initializer string) any {
	t.Helper()
	items := extract(t, "const v = "+initializer+";")
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Value)
	return items[0].Value.V
}

func TestParseLiteral_Numbers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, float64(42), literalOf(t, "42"))
	assert.Equal(t, 2.5, literalOf(t, "2.5"))
	assert.Equal(t, float64(-7), literalOf(t, "-7"))
	assert.Equal(t, float64(255), literalOf(t, "0xFF"))
	assert.Equal(t, float64(1000000), literalOf(t, "1_000_000"))
}

func TestParseLiteral_Strings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", literalOf(t, `"plain"`))
	assert.Equal(t, "single", literalOf(t, `'single'`))
	assert.Equal(t, "tab\there", literalOf(t, `"tab\there"`))
	assert.Equal(t, "no subst", literalOf(t, "`no subst`"))
}

func TestParseLiteral_BoolAndNull(t *testing.T) {
	t.Parallel()

	assert.Equal(t, true, literalOf(t, "true"))
	assert.Equal(t, false, literalOf(t, "false"))
	assert.Nil(t, literalOf(t, "null"))
}

func TestParseLiteral_FallbackRaw(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "new Date()", literalOf(t, "new Date()"))
	assert.Equal(t, "[1, 2, 3]", literalOf(t, "[1, 2, 3]"))

	// Oversized initializers truncate.
	big := "[" + strings.Repeat("1, ", 200) + "1]"
	raw, ok := literalOf(t, big).(string)
	require.True(t, ok)
	assert.Len(t, raw, maxRawValue)
}

func TestParseLiteral_TruncationKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	// Position the cut mid-rune: the call prefix is 3 bytes, each rune 2,
	// so a naive byte slice at maxRawValue would split one in half.
	big := `w("` + strings.Repeat("é", 300) + `")`
	raw, ok := literalOf(t, big).(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(raw), maxRawValue)
	assert.True(t, utf8.ValidString(raw))
	assert.Equal(t, maxRawValue-1, len(raw))
}
