package extraction

// TypeKind discriminates the normalized type expression variants. The set is
// closed: anything the normalizer does not recognize becomes TypeUnknown.
type TypeKind string

const (
	TypeUnion         TypeKind = "union"
	TypeIntersection  TypeKind = "intersection"
	TypeArray         TypeKind = "array"
	TypeTuple         TypeKind = "tuple"
	TypeOptional      TypeKind = "optional"
	TypeRest          TypeKind = "rest"
	TypeLiteral       TypeKind = "literal"
	TypeTemplate      TypeKind = "template"
	TypeFunction      TypeKind = "function"
	TypeParen         TypeKind = "paren"
	TypeReference     TypeKind = "reference"
	TypeOperator      TypeKind = "operator"
	TypeIndexedAccess TypeKind = "indexedAccess"
	TypeMapped        TypeKind = "mapped"
	TypeConditional   TypeKind = "conditional"
	TypePredicate     TypeKind = "predicate"
	TypeQuery         TypeKind = "query"
	TypeInfer         TypeKind = "infer"
	TypeObject        TypeKind = "object"
	TypeImport        TypeKind = "import"
	TypeUnknown       TypeKind = "unknown"
)

// TupleElement is one element of a tuple type, optionally labeled.
type TupleElement struct {
	Name     string    `json:"name,omitempty"`
	Optional bool      `json:"optional,omitempty"`
	Rest     bool      `json:"rest,omitempty"`
	Type     *TypeExpr `json:"type,omitempty"`
}

// TemplateSpan is one interpolation of a template literal type: the literal
// text preceding the interpolation plus the interpolated type.
type TemplateSpan struct {
	Literal string    `json:"literal,omitempty"`
	Type    *TypeExpr `json:"type,omitempty"`
}

// FunctionTypeParam is one parameter of a function type annotation.
type FunctionTypeParam struct {
	Name       string    `json:"name,omitempty"`
	Type       string    `json:"type,omitempty"`
	ParsedType *TypeExpr `json:"parsedType,omitempty"`
}

// ObjectTypeProperty is one property of a structural object type literal.
type ObjectTypeProperty struct {
	Name       string    `json:"name,omitempty"`
	Type       string    `json:"type,omitempty"`
	ParsedType *TypeExpr `json:"parsedType,omitempty"`
	Optional   bool      `json:"optional,omitempty"`
	Readonly   bool      `json:"readonly,omitempty"`
}

// TypeExpr is the normalized form of a type-position construct. Kind and
// Text are always present; the remaining fields are populated per kind.
// Normalization is total: unrecognized syntax and internal failures degrade
// to TypeUnknown, never to an error.
type TypeExpr struct {
	Kind TypeKind `json:"kind"`
	Text string   `json:"text"`

	// Union / intersection operands.
	Types []*TypeExpr `json:"types,omitempty"`

	// Array element, optional/rest/paren inner, predicate narrowed type.
	Element *TypeExpr `json:"element,omitempty"`

	// Tuple elements.
	Elements []TupleElement `json:"elements,omitempty"`

	// Literal token text, e.g. "\"north\"" or "42".
	Value string `json:"value,omitempty"`

	// Template literal interpolation spans, in source order.
	Spans []TemplateSpan `json:"spans,omitempty"`

	// Function type shape.
	Arguments  []FunctionTypeParam `json:"arguments,omitempty"`
	ReturnType *TypeExpr           `json:"returnType,omitempty"`

	// Reference name, infer binding, or predicate parameter name.
	Name          string      `json:"name,omitempty"`
	TypeArguments []*TypeExpr `json:"typeArguments,omitempty"`

	// Prefix type operator (keyof, readonly, unique) and its operand.
	Operator string    `json:"operator,omitempty"`
	Operand  *TypeExpr `json:"operand,omitempty"`

	// Indexed access T[K].
	Object *TypeExpr `json:"object,omitempty"`
	Index  *TypeExpr `json:"index,omitempty"`

	// Mapped type { [K in Src as Remap]?: V }.
	Key              string    `json:"key,omitempty"`
	KeySource        *TypeExpr `json:"keySource,omitempty"`
	As               *TypeExpr `json:"as,omitempty"`
	ReadonlyModifier string    `json:"readonlyModifier,omitempty"`
	OptionalModifier string    `json:"optionalModifier,omitempty"`

	// Conditional type Check extends Extends ? TrueType : FalseType.
	Check     *TypeExpr `json:"check,omitempty"`
	Extends   *TypeExpr `json:"extends,omitempty"`
	TrueType  *TypeExpr `json:"trueType,omitempty"`
	FalseType *TypeExpr `json:"falseType,omitempty"`

	// Type predicate: asserts flag; the narrowed type lives in Element.
	Asserts bool `json:"asserts,omitempty"`

	// Type query source expression, e.g. "config.defaults".
	Expression string `json:"expression,omitempty"`

	// Structural object type members.
	Properties      []ObjectTypeProperty `json:"properties,omitempty"`
	IndexSignatures []IndexSignature     `json:"indexSignatures,omitempty"`

	// Import type module specifier and qualifier.
	Module    string `json:"module,omitempty"`
	Qualifier string `json:"qualifier,omitempty"`

	// Diagnostic captured when normalization failed internally.
	Error string `json:"error,omitempty"`
}
