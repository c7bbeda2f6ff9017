// Package frontend wraps tree-sitter behind the narrow surface the
// extractor and normalizer consume. All node accessors are optional-
// returning: a missing child, field, or attribute yields (zero, false),
// never a panic. Existence checks live here and nowhere else.
package frontend

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Dialect selects the grammar used to parse a source unit.
type Dialect string

const (
	// DialectTypeScript parses .ts/.mts/.cts sources. The grammar is a
	// superset of JavaScript, so plain .js sources parse with it too.
	DialectTypeScript Dialect = "typescript"
	// DialectTSX parses .tsx/.jsx sources and is the lenient fallback when
	// the filename hint is missing or unrecognized.
	DialectTSX Dialect = "tsx"
)

// PickDialect maps a filename hint to a grammar dialect.
func PickDialect(filename string) Dialect {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".tsx"), strings.HasSuffix(lower, ".jsx"):
		return DialectTSX
	case strings.HasSuffix(lower, ".ts"), strings.HasSuffix(lower, ".mts"), strings.HasSuffix(lower, ".cts"),
		strings.HasSuffix(lower, ".js"), strings.HasSuffix(lower, ".mjs"), strings.HasSuffix(lower, ".cjs"):
		return DialectTypeScript
	default:
		return DialectTSX
	}
}

func language(d Dialect) *sitter.Language {
	if d == DialectTSX {
		return sitter.NewLanguage(typescript.LanguageTSX())
	}
	return sitter.NewLanguage(typescript.LanguageTypescript())
}

// Unit is one parsed source unit. Callers must Close it when done.
type Unit struct {
	tree    *sitter.Tree
	source  []byte
	dialect Dialect
}

// Parse parses source text with the dialect picked from the filename hint.
// Total inability to produce a tree is the one fatal condition; partial
// syntax errors still yield a usable tree.
func Parse(source []byte, filename string) (*Unit, error) {
	dialect := PickDialect(filename)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language(dialect))

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("front-end failed to parse %q", filename)
	}

	return &Unit{tree: tree, source: source, dialect: dialect}, nil
}

// Close releases the underlying parse tree.
func (u *Unit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

// Dialect reports the grammar dialect that parsed this unit.
func (u *Unit) Dialect() Dialect {
	return u.dialect
}

// Root returns the program node.
func (u *Unit) Root() Node {
	if u.tree == nil {
		return Node{}
	}
	return Node{n: u.tree.RootNode(), source: u.source}
}

// Statements returns the named top-level statements of the unit, comments
// excluded.
func (u *Unit) Statements() []Node {
	return StatementsOf(u.Root())
}

// StatementsOf returns the named statements of any block-like node,
// comments excluded. Namespace extraction uses it to re-enter nested
// statement lists without re-parsing.
func StatementsOf(body Node) []Node {
	var stmts []Node
	for _, child := range body.NamedChildren() {
		if child.Kind() == "comment" {
			continue
		}
		stmts = append(stmts, child)
	}
	return stmts
}
