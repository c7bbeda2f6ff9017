package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the front end:
// - Dialect selection by extension, TSX as the lenient fallback
// - Parsing yields a usable tree, even with syntax errors present
// - Statement listing skips comments
// - Optional accessors on missing nodes report absence without panicking
// - Doc comment lookup hops through export statements

func TestPickDialect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DialectTSX, PickDialect("app.tsx"))
	assert.Equal(t, DialectTSX, PickDialect("widget.jsx"))
	assert.Equal(t, DialectTypeScript, PickDialect("index.ts"))
	assert.Equal(t, DialectTypeScript, PickDialect("mod.mts"))
	assert.Equal(t, DialectTypeScript, PickDialect("lib.js"))
	assert.Equal(t, DialectTSX, PickDialect("unknown.txt"))
	assert.Equal(t, DialectTSX, PickDialect(""))
}

func TestParse_Statements(t *testing.T) {
	t.Parallel()

	unit, err := Parse([]byte("// leading\nconst a = 1;\nfunction b() {}\n"), "x.ts")
	require.NoError(t, err)
	defer unit.Close()

	stmts := unit.Statements()
	require.Len(t, stmts, 2)
	assert.Equal(t, "lexical_declaration", stmts[0].Kind())
	assert.Equal(t, "function_declaration", stmts[1].Kind())
}

func TestParse_ToleratesSyntaxErrors(t *testing.T) {
	t.Parallel()

	unit, err := Parse([]byte("const a = ;\nconst b = 2;\n"), "broken.ts")
	require.NoError(t, err)
	defer unit.Close()
	assert.True(t, unit.Root().Valid())
}

func TestNode_ZeroValueIsSafe(t *testing.T) {
	t.Parallel()

	var n Node
	assert.False(t, n.Valid())
	assert.Equal(t, "", n.Kind())
	assert.Equal(t, "", n.Text())
	assert.Nil(t, n.Position())
	_, ok := n.Field("name")
	assert.False(t, ok)
	assert.Empty(t, n.NamedChildren())
	assert.False(t, n.HasChild("async"))
}

func TestNode_FieldAndPosition(t *testing.T) {
	t.Parallel()

	unit, err := Parse([]byte("function greet(name: string) {}\n"), "x.ts")
	require.NoError(t, err)
	defer unit.Close()

	fn := unit.Statements()[0]
	name, ok := fn.FieldText("name")
	require.True(t, ok)
	assert.Equal(t, "greet", name)

	pos := fn.Position()
	require.NotNil(t, pos)
	assert.Equal(t, 1, pos.StartLine)
	assert.Equal(t, 0, pos.StartCol)
}

func TestNode_DocComment(t *testing.T) {
	t.Parallel()

	unit, err := Parse([]byte(`/** Direct. */
function a() {}

/** Through export. */
export function b() {}

// not jsdoc
function c() {}
`), "x.ts")
	require.NoError(t, err)
	defer unit.Close()

	stmts := unit.Statements()
	require.Len(t, stmts, 3)

	doc, ok := stmts[0].DocComment()
	require.True(t, ok)
	assert.Equal(t, "/** Direct. */", doc)

	// The declaration nested in the export statement sees the comment that
	// precedes the export statement.
	decl, ok := stmts[1].Field("declaration")
	require.True(t, ok)
	doc, ok = decl.DocComment()
	require.True(t, ok)
	assert.Equal(t, "/** Through export. */", doc)

	_, ok = stmts[2].DocComment()
	assert.False(t, ok)
}
