// Package projection prunes optional fields from an extracted declaration
// tree. A configuration maps recognized field names to a mode; the engine
// applies the resolved policy uniformly to every shape in the tree. Pruning
// only removes data, never rewrites it, so applying the same policy twice
// is a no-op.
package projection

import "sort"

// Mode is the per-field projection mode.
type Mode string

const (
	// ModeInclude keeps the field. Unspecified and malformed modes resolve
	// to include.
	ModeInclude Mode = "include"
	// ModeNever removes the field everywhere.
	ModeNever Mode = "never"
	// ModeOnly switches the whole policy to only-mode: every field not
	// marked only is removed.
	ModeOnly Mode = "only"
)

// Field names one prunable attribute. The same name governs the attribute
// wherever it appears: "doc" covers item docs, member docs, and enum member
// docs alike.
type Field string

const (
	FieldName             Field = "name"
	FieldSubtype          Field = "subtype"
	FieldExports          Field = "exports"
	FieldLevel            Field = "level"
	FieldDoc              Field = "doc"
	FieldDecorators       Field = "decorators"
	FieldPosition         Field = "position"
	FieldValue            Field = "value"
	FieldRaw              Field = "raw"
	FieldType             Field = "type"
	FieldParsedType       Field = "parsedType"
	FieldArguments        Field = "arguments"
	FieldDefaultValue     Field = "defaultValue"
	FieldTypeParameters   Field = "typeParameters"
	FieldReturnType       Field = "returnType"
	FieldParsedReturnType Field = "parsedReturnType"
	FieldConstructors     Field = "constructors"
	FieldProperties       Field = "properties"
	FieldMethods          Field = "methods"
	FieldIndexSignatures  Field = "indexSignatures"
	FieldExtends          Field = "extends"
	FieldImplements       Field = "implements"
	FieldMembers          Field = "members"
	FieldAccessibility    Field = "accessibility"
	FieldStatic           Field = "static"
	FieldReadonly         Field = "readonly"
	FieldAsync            Field = "async"
	FieldAbstract         Field = "abstract"
	FieldAccessors        Field = "accessors"
	FieldOptional         Field = "optional"
	FieldModifiers        Field = "modifiers"
)

// recognized indexes the closed field set.
var recognized = map[Field]struct{}{
	FieldName: {}, FieldSubtype: {}, FieldExports: {}, FieldLevel: {},
	FieldDoc: {}, FieldDecorators: {}, FieldPosition: {}, FieldValue: {},
	FieldRaw: {}, FieldType: {}, FieldParsedType: {}, FieldArguments: {},
	FieldDefaultValue: {}, FieldTypeParameters: {}, FieldReturnType: {},
	FieldParsedReturnType: {}, FieldConstructors: {}, FieldProperties: {},
	FieldMethods: {}, FieldIndexSignatures: {}, FieldExtends: {},
	FieldImplements: {}, FieldMembers: {}, FieldAccessibility: {},
	FieldStatic: {}, FieldReadonly: {}, FieldAsync: {}, FieldAbstract: {},
	FieldAccessors: {}, FieldOptional: {}, FieldModifiers: {},
}

// Recognized reports whether name is a known projection field.
func Recognized(name Field) bool {
	_, ok := recognized[name]
	return ok
}

// Fields returns every recognized field name, sorted.
func Fields() []Field {
	out := make([]Field, 0, len(recognized))
	for f := range recognized {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
