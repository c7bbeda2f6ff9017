// Package extraction defines the declaration item tree produced by parsing a
// TypeScript or JavaScript source unit. Every type here is JSON-serializable;
// optional attributes carry omitempty so that absent data is omitted rather
// than rendered as an explicit null.
package extraction

import "encoding/json"

// ItemKind discriminates the declaration item variants.
type ItemKind string

const (
	KindVariable  ItemKind = "variable"
	KindFunction  ItemKind = "function"
	KindClass     ItemKind = "class"
	KindInterface ItemKind = "interface"
	KindTypeAlias ItemKind = "typeAlias"
	KindEnum      ItemKind = "enum"
	KindNamespace ItemKind = "namespace"
)

// ExportMode describes how a declaration is exported from its source unit.
type ExportMode string

const (
	ExportNormal  ExportMode = "normal"
	ExportDefault ExportMode = "default"
	ExportNone    ExportMode = "none"
)

// Level records whether an item was found at the top level of the source
// unit or inside a namespace body. Namespace nesting is transitive: every
// item produced while unpacking a namespace body is nested, however deep.
type Level string

const (
	LevelTop    Level = "top"
	LevelNested Level = "nested"
)

// Position is a 1-based line / 0-based column source range.
type Position struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

// Value holds a best-effort parsed literal. A nil *Value means the attribute
// is absent; a non-nil Value whose V is nil represents a literal null.
type Value struct {
	V any
}

// MarshalJSON renders the wrapped primitive (or raw text fallback) directly.
func (v *Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.V)
}

// UnmarshalJSON accepts whatever JSON value was stored.
func (v *Value) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &v.V)
}

// NewValue wraps a parsed literal.
func NewValue(v any) *Value {
	return &Value{V: v}
}

// Decorator is a single decorator attached to a declaration, member, or
// parameter. Arguments keeps the raw source text of each decorator argument.
type Decorator struct {
	Name      string   `json:"name"`
	Arguments []string `json:"arguments,omitempty"`
	Text      string   `json:"text,omitempty"`
}

// Parameter describes one function, method, or constructor parameter.
type Parameter struct {
	Name         string      `json:"name,omitempty"`
	HasType      bool        `json:"hasType,omitempty"`
	Type         string      `json:"type,omitempty"`
	ParsedType   *TypeExpr   `json:"parsedType,omitempty"`
	Optional     bool        `json:"optional,omitempty"`
	Rest         bool        `json:"rest,omitempty"`
	DefaultValue *Value      `json:"defaultValue,omitempty"`
	DefaultRaw   string      `json:"defaultRaw,omitempty"`
	Decorators   []Decorator `json:"decorators,omitempty"`
	Position     *Position   `json:"position,omitempty"`
}

// TypeParameter describes one generic type parameter, e.g. T extends object = {}.
type TypeParameter struct {
	Name       string `json:"name,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Default    string `json:"default,omitempty"`
}

// Constructor is a class constructor; Owner is the class name.
type Constructor struct {
	Owner      string      `json:"owner,omitempty"`
	Arguments  []Parameter `json:"arguments,omitempty"`
	Decorators []Decorator `json:"decorators,omitempty"`
	Position   *Position   `json:"position,omitempty"`
	Doc        string      `json:"doc,omitempty"`
}

// Property is a class or interface property. Accessibility and Static are
// only populated for class properties.
type Property struct {
	Name          string      `json:"name,omitempty"`
	Type          string      `json:"type,omitempty"`
	ParsedType    *TypeExpr   `json:"parsedType,omitempty"`
	Value         *Value      `json:"value,omitempty"`
	Raw           string      `json:"raw,omitempty"`
	Optional      bool        `json:"optional,omitempty"`
	Static        bool        `json:"static,omitempty"`
	Readonly      bool        `json:"readonly,omitempty"`
	Accessibility string      `json:"accessibility,omitempty"`
	Decorators    []Decorator `json:"decorators,omitempty"`
	Position      *Position   `json:"position,omitempty"`
	Doc           string      `json:"doc,omitempty"`
}

// Method is a class method or interface method signature.
type Method struct {
	Name             string          `json:"name,omitempty"`
	Accessibility    string          `json:"accessibility,omitempty"`
	Static           bool            `json:"static,omitempty"`
	Async            bool            `json:"async,omitempty"`
	Abstract         bool            `json:"abstract,omitempty"`
	Getter           bool            `json:"getter,omitempty"`
	Setter           bool            `json:"setter,omitempty"`
	Arguments        []Parameter     `json:"arguments,omitempty"`
	TypeParameters   []TypeParameter `json:"typeParameters,omitempty"`
	ReturnType       string          `json:"returnType,omitempty"`
	ParsedReturnType *TypeExpr       `json:"parsedReturnType,omitempty"`
	Decorators       []Decorator     `json:"decorators,omitempty"`
	Position         *Position       `json:"position,omitempty"`
	Doc              string          `json:"doc,omitempty"`
}

// IndexSignature is a class or interface index signature, e.g.
// [key: string]: number.
type IndexSignature struct {
	KeyType  string `json:"keyType,omitempty"`
	Type     string `json:"type,omitempty"`
	Readonly bool   `json:"readonly,omitempty"`
}

// EnumMember is one member of an enum declaration.
type EnumMember struct {
	Name     string    `json:"name,omitempty"`
	Value    *Value    `json:"value,omitempty"`
	Position *Position `json:"position,omitempty"`
	Doc      string    `json:"doc,omitempty"`
}

// Item is one declaration discovered in a source unit. Kind is the
// structural discriminator and is always present; the remaining fields are
// populated per kind and pruned by projection.
type Item struct {
	Kind       ItemKind    `json:"kind"`
	Name       string      `json:"name,omitempty"`
	Exports    ExportMode  `json:"exports,omitempty"`
	Level      Level       `json:"level,omitempty"`
	Doc        string      `json:"doc,omitempty"`
	Decorators []Decorator `json:"decorators,omitempty"`
	Position   *Position   `json:"position,omitempty"`

	// Variable.
	Subtype string `json:"subtype,omitempty"` // constant, let, var
	Value   *Value `json:"value,omitempty"`
	Raw     string `json:"raw,omitempty"`

	// Variable annotation or type alias target.
	Type       string    `json:"type,omitempty"`
	ParsedType *TypeExpr `json:"parsedType,omitempty"`

	// Function and method-like data.
	Arguments        []Parameter     `json:"arguments,omitempty"`
	TypeParameters   []TypeParameter `json:"typeParameters,omitempty"`
	ReturnType       string          `json:"returnType,omitempty"`
	ParsedReturnType *TypeExpr       `json:"parsedReturnType,omitempty"`
	IsAsync          bool            `json:"isAsync,omitempty"`
	IsGenerator      bool            `json:"isGenerator,omitempty"`

	// Class and interface structure.
	Extends         []string         `json:"extends,omitempty"`
	Implements      []string         `json:"implements,omitempty"`
	Constructors    []Constructor    `json:"constructors,omitempty"`
	Properties      []Property       `json:"properties,omitempty"`
	Methods         []Method         `json:"methods,omitempty"`
	IndexSignatures []IndexSignature `json:"indexSignatures,omitempty"`
	IsAbstract      bool             `json:"isAbstract,omitempty"`

	// Enum.
	EnumMembers []EnumMember `json:"members,omitempty"`
	IsConst     bool         `json:"isConst,omitempty"`

	// Namespace. Every member carries Level == LevelNested.
	Members []Item `json:"namespaceMembers,omitempty"`
}
