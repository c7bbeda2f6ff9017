package parsers

import (
	"fmt"
	"strings"

	"github.com/Kryft-Studios/parsee/extraction"
	"github.com/Kryft-Studios/parsee/internal/frontend"
)

// Normalize converts a type-position node into its normalized recursive
// form. It is total: an invalid node yields nil (the annotation was absent),
// an unrecognized node kind degrades to TypeUnknown carrying the raw text,
// and an internal failure degrades to TypeUnknown carrying a diagnostic.
// No error ever propagates out of this function.
func Normalize(node frontend.Node) (expr *extraction.TypeExpr) {
	if !node.Valid() {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			expr = &extraction.TypeExpr{
				Kind:  extraction.TypeUnknown,
				Text:  node.TrimmedText(),
				Error: fmt.Sprintf("type normalization failed: %v", r),
			}
		}
	}()
	return normalize(node)
}

// normalizeAnnotation unwraps a type_annotation wrapper (the ": T" form)
// and returns the raw type text plus its normalized form.
func normalizeAnnotation(annotation frontend.Node, ok bool) (string, *extraction.TypeExpr) {
	if !ok {
		return "", nil
	}
	inner := annotationType(annotation)
	if !inner.Valid() {
		return "", nil
	}
	return inner.TrimmedText(), Normalize(inner)
}

// annotationType returns the type node inside an annotation wrapper (or the
// node itself when it is already a bare type). The grammar wraps return
// types in several wrapper kinds: type_annotation, the omitting/adding/
// opting variants, type_predicate_annotation, and asserts_annotation.
func annotationType(annotation frontend.Node) frontend.Node {
	if strings.HasSuffix(annotation.Kind(), "_annotation") {
		children := annotation.NamedChildren()
		if len(children) == 0 {
			return frontend.Node{}
		}
		return children[0]
	}
	return annotation
}

func normalize(node frontend.Node) *extraction.TypeExpr {
	text := node.TrimmedText()

	switch node.Kind() {
	case "union_type":
		return &extraction.TypeExpr{Kind: extraction.TypeUnion, Text: text, Types: flattenOperands(node, "union_type")}

	case "intersection_type":
		return &extraction.TypeExpr{Kind: extraction.TypeIntersection, Text: text, Types: flattenOperands(node, "intersection_type")}

	case "array_type":
		return &extraction.TypeExpr{Kind: extraction.TypeArray, Text: text, Element: firstNamedType(node)}

	case "tuple_type":
		return normalizeTuple(node, text)

	case "optional_type":
		return &extraction.TypeExpr{Kind: extraction.TypeOptional, Text: text, Element: firstNamedType(node)}

	case "rest_type":
		return &extraction.TypeExpr{Kind: extraction.TypeRest, Text: text, Element: firstNamedType(node)}

	case "literal_type":
		return &extraction.TypeExpr{Kind: extraction.TypeLiteral, Text: text, Value: text}

	case "template_literal_type":
		return normalizeTemplate(node, text)

	case "function_type", "constructor_type":
		return normalizeFunctionType(node, text)

	case "parenthesized_type":
		return &extraction.TypeExpr{Kind: extraction.TypeParen, Text: text, Element: firstNamedType(node)}

	case "predefined_type", "type_identifier", "nested_type_identifier":
		return &extraction.TypeExpr{Kind: extraction.TypeReference, Text: text, Name: text}

	case "generic_type":
		return normalizeGeneric(node, text)

	case "index_type_query":
		return &extraction.TypeExpr{Kind: extraction.TypeOperator, Text: text, Operator: "keyof", Operand: firstNamedType(node)}

	case "readonly_type":
		return &extraction.TypeExpr{Kind: extraction.TypeOperator, Text: text, Operator: "readonly", Operand: firstNamedType(node)}

	case "lookup_type":
		return normalizeLookup(node, text)

	case "conditional_type":
		return normalizeConditional(node, text)

	case "type_predicate":
		return normalizePredicate(node, text, false)

	case "asserts", "asserts_annotation":
		return normalizeAsserts(node, text)

	case "type_query":
		return normalizeQuery(node, text)

	case "infer_type":
		return normalizeInfer(node, text)

	case "object_type":
		return normalizeObject(node, text)

	case "import_type":
		return normalizeImport(node, text)

	default:
		return &extraction.TypeExpr{Kind: extraction.TypeUnknown, Text: text}
	}
}

// firstNamedType normalizes the first named child, the common shape for
// single-operand nodes.
func firstNamedType(node frontend.Node) *extraction.TypeExpr {
	children := node.NamedChildren()
	if len(children) == 0 {
		return nil
	}
	return normalize(children[0])
}

// flattenOperands collects the operand list of a union or intersection.
// The grammar nests A | B | C left-associatively; the normalized form is a
// single flat operand list.
func flattenOperands(node frontend.Node, kind string) []*extraction.TypeExpr {
	var operands []*extraction.TypeExpr
	for _, child := range node.NamedChildren() {
		if child.Kind() == kind {
			operands = append(operands, flattenOperands(child, kind)...)
			continue
		}
		operands = append(operands, normalize(child))
	}
	return operands
}

func normalizeTuple(node frontend.Node, text string) *extraction.TypeExpr {
	var elements []extraction.TupleElement
	for _, child := range node.NamedChildren() {
		switch child.Kind() {
		case "optional_type":
			elements = append(elements, extraction.TupleElement{Optional: true, Type: firstNamedType(child)})
		case "rest_type":
			elements = append(elements, extraction.TupleElement{Rest: true, Type: firstNamedType(child)})
		case "tuple_parameter", "optional_tuple_parameter", "labeled_tuple_element":
			elem := extraction.TupleElement{Optional: child.Kind() == "optional_tuple_parameter"}
			for _, part := range child.NamedChildren() {
				if part.Kind() == "identifier" || part.Kind() == "rest_pattern" {
					elem.Name = strings.TrimPrefix(part.TrimmedText(), "...")
					elem.Rest = elem.Rest || part.Kind() == "rest_pattern"
					continue
				}
				elem.Type = normalize(annotationType(part))
			}
			elements = append(elements, elem)
		default:
			elements = append(elements, extraction.TupleElement{Type: normalize(child)})
		}
	}
	return &extraction.TypeExpr{Kind: extraction.TypeTuple, Text: text, Elements: elements}
}

func normalizeTemplate(node frontend.Node, text string) *extraction.TypeExpr {
	var spans []extraction.TemplateSpan
	cursor := node.StartByte() + 1 // skip the opening backtick
	for _, child := range node.Children() {
		if child.Kind() != "template_type" {
			continue
		}
		spans = append(spans, extraction.TemplateSpan{
			Literal: node.TextBetween(cursor, child.StartByte()),
			Type:    firstNamedType(child),
		})
		cursor = child.EndByte()
	}
	// Trailing literal text after the last interpolation.
	if end := node.EndByte(); end > cursor+1 {
		if tail := node.TextBetween(cursor, end-1); tail != "" {
			spans = append(spans, extraction.TemplateSpan{Literal: tail})
		}
	}
	return &extraction.TypeExpr{Kind: extraction.TypeTemplate, Text: text, Spans: spans}
}

func normalizeFunctionType(node frontend.Node, text string) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypeFunction, Text: text}
	params, hasParams := node.FirstOfKind("formal_parameters")
	if hasParams {
		for _, param := range params.NamedChildren() {
			if param.Kind() != "required_parameter" && param.Kind() != "optional_parameter" {
				continue
			}
			p := extraction.FunctionTypeParam{}
			if pattern, ok := param.Field("pattern"); ok {
				p.Name = strings.TrimPrefix(pattern.TrimmedText(), "...")
			}
			if annotation, ok := param.Field("type"); ok {
				p.Type, p.ParsedType = normalizeAnnotation(annotation, true)
			}
			expr.Arguments = append(expr.Arguments, p)
		}
	}
	// The return type follows "=>" and is the last named child that is not
	// the parameter list or the type parameter list.
	children := node.NamedChildren()
	for i := len(children) - 1; i >= 0; i-- {
		kind := children[i].Kind()
		if kind == "formal_parameters" || kind == "type_parameters" {
			break
		}
		expr.ReturnType = normalize(children[i])
		break
	}
	return expr
}

func normalizeGeneric(node frontend.Node, text string) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypeReference, Text: text}
	if name, ok := node.FirstOfKind("type_identifier", "nested_type_identifier"); ok {
		expr.Name = name.TrimmedText()
	}
	if args, ok := node.FirstOfKind("type_arguments"); ok {
		for _, arg := range args.NamedChildren() {
			expr.TypeArguments = append(expr.TypeArguments, normalize(arg))
		}
	}
	return expr
}

func normalizeLookup(node frontend.Node, text string) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypeIndexedAccess, Text: text}
	children := node.NamedChildren()
	if len(children) > 0 {
		expr.Object = normalize(children[0])
	}
	if len(children) > 1 {
		expr.Index = normalize(children[1])
	}
	return expr
}

func normalizeConditional(node frontend.Node, text string) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypeConditional, Text: text}
	if check, ok := node.Field("left"); ok {
		expr.Check = normalize(check)
	}
	if extends, ok := node.Field("right"); ok {
		expr.Extends = normalize(extends)
	}
	if truthy, ok := node.Field("consequence"); ok {
		expr.TrueType = normalize(truthy)
	}
	if falsy, ok := node.Field("alternative"); ok {
		expr.FalseType = normalize(falsy)
	}
	return expr
}

func normalizePredicate(node frontend.Node, text string, asserts bool) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypePredicate, Text: text, Asserts: asserts}
	if name, ok := node.Field("name"); ok {
		expr.Name = name.TrimmedText()
	}
	if narrowed, ok := node.Field("type"); ok {
		expr.Element = normalize(narrowed)
	}
	return expr
}

func normalizeAsserts(node frontend.Node, text string) *extraction.TypeExpr {
	// The predicate may sit one level down, inside an inner asserts node.
	if predicate, ok := findDescendant(node, "type_predicate"); ok {
		return normalizePredicate(predicate, text, true)
	}
	expr := &extraction.TypeExpr{Kind: extraction.TypePredicate, Text: text, Asserts: true}
	if ident, ok := findDescendant(node, "identifier"); ok {
		expr.Name = ident.TrimmedText()
	} else if children := node.NamedChildren(); len(children) > 0 {
		expr.Name = children[len(children)-1].TrimmedText()
	}
	return expr
}

// findDescendant walks named children depth-first for the first node of the
// given kind.
func findDescendant(node frontend.Node, kind string) (frontend.Node, bool) {
	for _, child := range node.NamedChildren() {
		if child.Kind() == kind {
			return child, true
		}
		if found, ok := findDescendant(child, kind); ok {
			return found, true
		}
	}
	return frontend.Node{}, false
}

func normalizeQuery(node frontend.Node, text string) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypeQuery, Text: text}
	if children := node.NamedChildren(); len(children) > 0 {
		expr.Expression = children[0].TrimmedText()
	}
	return expr
}

func normalizeInfer(node frontend.Node, text string) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypeInfer, Text: text}
	if children := node.NamedChildren(); len(children) > 0 {
		expr.Name = children[0].TrimmedText()
	}
	return expr
}

func normalizeObject(node frontend.Node, text string) *extraction.TypeExpr {
	// A mapped type parses as an object type whose single member is an
	// index signature with a mapped_type_clause. Surface it as its own kind.
	members := node.NamedChildren()
	if len(members) == 1 && members[0].Kind() == "index_signature" {
		if clause, ok := members[0].FirstOfKind("mapped_type_clause"); ok {
			return normalizeMapped(members[0], clause, text)
		}
	}

	expr := &extraction.TypeExpr{Kind: extraction.TypeObject, Text: text}
	for _, member := range members {
		switch member.Kind() {
		case "property_signature":
			prop := extraction.ObjectTypeProperty{
				Optional: member.HasChild("?"),
				Readonly: member.HasChild("readonly"),
			}
			if name, ok := member.Field("name"); ok {
				prop.Name = name.TrimmedText()
			}
			prop.Type, prop.ParsedType = normalizeAnnotation(member.Field("type"))
			expr.Properties = append(expr.Properties, prop)
		case "index_signature":
			expr.IndexSignatures = append(expr.IndexSignatures, parseIndexSignature(member))
		}
	}
	return expr
}

func normalizeMapped(signature, clause frontend.Node, text string) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypeMapped, Text: text}

	parts := clause.NamedChildren()
	if len(parts) > 0 {
		expr.Key = parts[0].TrimmedText()
	}
	if len(parts) > 1 {
		expr.KeySource = normalize(parts[1])
	}
	if len(parts) > 2 {
		expr.As = normalize(parts[2])
	}

	expr.ReadonlyModifier = modifierToken(signature, "readonly")
	expr.OptionalModifier = modifierToken(signature, "?")

	for _, child := range signature.Children() {
		if strings.HasSuffix(child.Kind(), "type_annotation") {
			_, value := normalizeAnnotation(child, true)
			expr.Element = value
			// -? and +? render as dedicated annotation kinds.
			switch child.Kind() {
			case "omitting_type_annotation":
				expr.OptionalModifier = "-?"
			case "adding_type_annotation":
				expr.OptionalModifier = "+?"
			case "opting_type_annotation":
				expr.OptionalModifier = "?"
			}
		}
	}
	return expr
}

// modifierToken reports a mapped-type modifier with its optional +/- sign,
// e.g. "readonly", "-readonly", or "".
func modifierToken(node frontend.Node, token string) string {
	children := node.Children()
	for i, child := range children {
		if child.Kind() != token {
			continue
		}
		if i > 0 && (children[i-1].Kind() == "-" || children[i-1].Kind() == "+") {
			return children[i-1].Kind() + token
		}
		return token
	}
	return ""
}

func normalizeImport(node frontend.Node, text string) *extraction.TypeExpr {
	expr := &extraction.TypeExpr{Kind: extraction.TypeImport, Text: text}
	for _, child := range node.NamedChildren() {
		switch child.Kind() {
		case "string":
			expr.Module = strings.Trim(child.TrimmedText(), "\"'`")
		case "type_identifier", "nested_type_identifier":
			expr.Qualifier = child.TrimmedText()
		}
	}
	return expr
}

// parseIndexSignature extracts a plain (non-mapped) index signature.
func parseIndexSignature(node frontend.Node) extraction.IndexSignature {
	sig := extraction.IndexSignature{Readonly: node.HasChild("readonly")}
	for _, child := range node.NamedChildren() {
		kind := child.Kind()
		if kind == "identifier" || kind == "property_identifier" {
			continue
		}
		if strings.HasSuffix(kind, "type_annotation") {
			if inner := annotationType(child); inner.Valid() {
				sig.Type = inner.TrimmedText()
			}
			continue
		}
		if sig.KeyType == "" {
			sig.KeyType = child.TrimmedText()
		}
	}
	return sig
}
