// Package parsee extracts structured declaration data from TypeScript and
// JavaScript source. It parses a source unit with tree-sitter, models the
// top-level declarations (variables, functions, classes, interfaces, type
// aliases, enums, namespaces) including normalized type expressions, and
// optionally prunes the result tree with a field projection.
package parsee

import (
	"github.com/Kryft-Studios/parsee/extraction"
	"github.com/Kryft-Studios/parsee/internal/frontend"
	"github.com/Kryft-Studios/parsee/internal/parsers"
	"github.com/Kryft-Studios/parsee/projection"
)

// Options controls one extraction.
type Options struct {
	// Filename hints the grammar dialect: .tsx/.jsx parse as TSX, other
	// known extensions as TypeScript, anything else falls back to TSX as
	// the lenient dialect. The file is never opened; only the name is read.
	Filename string

	// Fields configures projection. Nil or empty keeps every field.
	Fields projection.Config
}

// Extract parses source and returns its declaration items in source order.
// Malformed declarations are skipped rather than failing the run; the only
// error condition is the front end producing no syntax tree at all.
func Extract(source []byte, opts Options) ([]extraction.Item, error) {
	unit, err := frontend.Parse(source, opts.Filename)
	if err != nil {
		return nil, err
	}
	defer unit.Close()

	items := parsers.Extract(unit)
	if len(opts.Fields) == 0 {
		return items, nil
	}
	return projection.Apply(items, projection.Resolve(opts.Fields)), nil
}

// Dialect reports the grammar dialect the filename hint selects, without
// parsing anything.
func Dialect(filename string) string {
	return string(frontend.PickDialect(filename))
}
