// Package parsers turns a parsed source unit into declaration items. The
// extractor walks top-level statements, unpacks export wrappers and
// namespace bodies, and tolerates malformed declarations by skipping them:
// a statement that cannot be modeled never aborts the rest of the unit.
package parsers

import (
	"strings"

	"github.com/Kryft-Studios/parsee/extraction"
	"github.com/Kryft-Studios/parsee/internal/frontend"
)

// Extract walks the top-level statements of a unit and returns the
// declaration items found, in source order.
func Extract(unit *frontend.Unit) []extraction.Item {
	return extractStatements(unit.Statements(), extraction.LevelTop)
}

func extractStatements(stmts []frontend.Node, level extraction.Level) []extraction.Item {
	w := &walker{level: level}
	for _, stmt := range stmts {
		w.statement(stmt)
	}
	return w.items
}

// exportInfo carries export disposition and any decorators that syntactically
// belong to the export statement rather than the declaration itself.
type exportInfo struct {
	Mode       extraction.ExportMode
	Decorators []extraction.Decorator
}

type walker struct {
	level extraction.Level
	items []extraction.Item
}

// statement processes one statement with failure isolation: a panic while
// modeling a declaration drops that declaration only.
func (w *walker) statement(stmt frontend.Node) {
	checkpoint := len(w.items)
	defer func() {
		if r := recover(); r != nil {
			w.items = w.items[:checkpoint]
		}
	}()
	w.dispatch(stmt, exportInfo{Mode: extraction.ExportNone})
}

func (w *walker) dispatch(stmt frontend.Node, exp exportInfo) {
	switch stmt.Kind() {
	case "export_statement":
		w.exportStatement(stmt)
	case "ambient_declaration":
		// declare const / declare function / declare namespace: model the
		// inner declaration as if the keyword were absent.
		for _, child := range stmt.NamedChildren() {
			w.dispatch(child, exp)
		}
	case "expression_statement":
		// A bare namespace statement parses as an expression statement
		// wrapping the module node.
		for _, child := range stmt.NamedChildren() {
			if child.Kind() == "internal_module" || child.Kind() == "module" {
				w.dispatch(child, exp)
			}
		}
	case "function_declaration", "generator_function_declaration", "function_signature":
		w.items = append(w.items, w.function(stmt, exp))
	case "class_declaration", "abstract_class_declaration":
		w.items = append(w.items, w.class(stmt, exp))
	case "interface_declaration":
		w.items = append(w.items, w.interfaceDecl(stmt, exp))
	case "type_alias_declaration":
		w.items = append(w.items, w.typeAlias(stmt, exp))
	case "enum_declaration":
		w.items = append(w.items, w.enum(stmt, exp))
	case "lexical_declaration", "variable_declaration":
		w.variables(stmt, exp)
	case "internal_module", "module":
		if item, ok := w.namespace(stmt, exp); ok {
			w.items = append(w.items, item)
		}
	}
	// Anything else is not a declaration statement and produces no item.
}

// exportStatement unwraps `export ...` and `export default ...`. A default
// export of a bare identifier relabels the declaration it refers to; a
// default export of a function or arrow literal becomes a function item of
// its own; other default-exported expressions are dropped.
func (w *walker) exportStatement(stmt frontend.Node) {
	exp := exportInfo{Mode: extraction.ExportNormal}
	if stmt.HasChild("default") {
		exp.Mode = extraction.ExportDefault
	}
	for _, dec := range stmt.AllOfKind("decorator") {
		exp.Decorators = append(exp.Decorators, w.decorator(dec))
	}

	if decl, ok := stmt.Field("declaration"); ok {
		w.dispatch(decl, exp)
		return
	}

	if exp.Mode != extraction.ExportDefault {
		// export { a, b } and export * from "m" re-export existing
		// declarations; they introduce nothing to model.
		return
	}

	if value, ok := stmt.Field("value"); ok {
		w.defaultExpression(stmt, value, exp)
		return
	}
	for _, child := range stmt.NamedChildren() {
		if child.Kind() == "comment" || child.Kind() == "decorator" {
			continue
		}
		w.defaultExpression(stmt, child, exp)
		return
	}
}

func (w *walker) defaultExpression(stmt, value frontend.Node, exp exportInfo) {
	switch value.Kind() {
	case "identifier":
		w.relabelDefault(value.TrimmedText())
	case "arrow_function", "function_expression", "function", "generator_function":
		w.items = append(w.items, w.functionLiteral(stmt, value, exp))
	case "parenthesized_expression":
		if inner := value.NamedChildren(); len(inner) == 1 {
			w.defaultExpression(stmt, inner[0], exp)
		}
	}
	// Object literals, calls, and other expressions carry no declaration
	// shape worth modeling and are dropped.
}

// relabelDefault marks the most recent declaration with the given name as
// the default export.
func (w *walker) relabelDefault(name string) {
	if name == "" {
		return
	}
	for i := len(w.items) - 1; i >= 0; i-- {
		if w.items[i].Name == name {
			w.items[i].Exports = extraction.ExportDefault
			return
		}
	}
}

func (w *walker) base(kind extraction.ItemKind, stmt frontend.Node, exp exportInfo) extraction.Item {
	item := extraction.Item{
		Kind:       kind,
		Exports:    exp.Mode,
		Level:      w.level,
		Decorators: exp.Decorators,
		Position:   stmt.Position(),
	}
	if name, ok := stmt.FieldText("name"); ok {
		item.Name = name
	}
	if doc, ok := stmt.DocComment(); ok {
		item.Doc = doc
	}
	return item
}

// function models function declarations, generator declarations, and the
// bodiless function signatures that appear in ambient contexts.
func (w *walker) function(stmt frontend.Node, exp exportInfo) extraction.Item {
	item := w.base(extraction.KindFunction, stmt, exp)
	item.IsAsync = stmt.HasChild("async")
	item.IsGenerator = stmt.Kind() == "generator_function_declaration" || stmt.HasChild("*")
	item.TypeParameters = w.typeParameters(stmt)
	if params, ok := stmt.FirstOfKind("formal_parameters"); ok {
		item.Arguments = w.parameters(params)
	}
	item.ReturnType, item.ParsedReturnType = normalizeAnnotation(stmt.Field("return_type"))
	return item
}

// functionLiteral models a default-exported function or arrow expression.
// The name stays empty when the literal is anonymous.
func (w *walker) functionLiteral(stmt, value frontend.Node, exp exportInfo) extraction.Item {
	item := extraction.Item{
		Kind:       extraction.KindFunction,
		Exports:    exp.Mode,
		Level:      w.level,
		Decorators: exp.Decorators,
		Position:   value.Position(),
	}
	if name, ok := value.FieldText("name"); ok {
		item.Name = name
	}
	if doc, ok := stmt.DocComment(); ok {
		item.Doc = doc
	}
	item.IsAsync = value.HasChild("async")
	item.IsGenerator = value.Kind() == "generator_function" || value.HasChild("*")
	item.TypeParameters = w.typeParameters(value)
	if params, ok := value.Field("parameters"); ok {
		item.Arguments = w.parameters(params)
	} else if params, ok := value.FirstOfKind("formal_parameters"); ok {
		item.Arguments = w.parameters(params)
	} else if single, ok := value.Field("parameter"); ok {
		// Arrow shorthand: x => x * 2 has a bare identifier parameter.
		item.Arguments = []extraction.Parameter{{Name: single.TrimmedText(), Position: single.Position()}}
	}
	item.ReturnType, item.ParsedReturnType = normalizeAnnotation(value.Field("return_type"))
	return item
}

// variables expands a lexical or var statement into one item per declared
// name. Destructuring patterns contribute one item per bound identifier.
func (w *walker) variables(stmt frontend.Node, exp exportInfo) {
	subtype := "var"
	switch {
	case stmt.HasChild("const"):
		subtype = "constant"
	case stmt.HasChild("let"):
		subtype = "let"
	}

	doc := ""
	if d, ok := stmt.DocComment(); ok {
		doc = d
	}

	for _, declarator := range stmt.AllOfKind("variable_declarator") {
		name, ok := declarator.Field("name")
		if !ok {
			continue
		}
		typeText, parsedType := normalizeAnnotation(declarator.Field("type"))

		build := func(bound string) extraction.Item {
			item := extraction.Item{
				Kind:       extraction.KindVariable,
				Name:       bound,
				Exports:    exp.Mode,
				Level:      w.level,
				Decorators: exp.Decorators,
				Position:   declarator.Position(),
				Doc:        doc,
				Subtype:    subtype,
				Type:       typeText,
				ParsedType: parsedType,
			}
			if value, ok := declarator.Field("value"); ok {
				item.Value = parseLiteral(value)
				item.Raw = rawText(value)
			}
			return item
		}

		if name.Kind() == "identifier" {
			w.items = append(w.items, build(name.TrimmedText()))
			continue
		}
		// Destructuring: const { a, b } = src binds a and b. The shared
		// initializer is not attributable to a single name, so the bound
		// items carry no value.
		for _, bound := range boundIdentifiers(name) {
			item := build(bound)
			item.Value = nil
			item.Raw = ""
			w.items = append(w.items, item)
		}
	}
}

// boundIdentifiers collects the names bound by a destructuring pattern.
func boundIdentifiers(pattern frontend.Node) []string {
	var names []string
	var visit func(frontend.Node)
	visit = func(node frontend.Node) {
		switch node.Kind() {
		case "identifier", "shorthand_property_identifier_pattern":
			names = append(names, node.TrimmedText())
		case "pair_pattern":
			// { source: local } binds the value side only.
			if value, ok := node.Field("value"); ok {
				visit(value)
			}
		case "assignment_pattern":
			if left, ok := node.Field("left"); ok {
				visit(left)
			}
		default:
			for _, child := range node.NamedChildren() {
				visit(child)
			}
		}
	}
	visit(pattern)
	return names
}

func (w *walker) class(stmt frontend.Node, exp exportInfo) extraction.Item {
	item := w.base(extraction.KindClass, stmt, exp)
	item.IsAbstract = stmt.Kind() == "abstract_class_declaration" || stmt.HasChild("abstract")
	item.TypeParameters = w.typeParameters(stmt)
	for _, dec := range stmt.AllOfKind("decorator") {
		item.Decorators = append(item.Decorators, w.decorator(dec))
	}

	if heritage, ok := stmt.FirstOfKind("class_heritage"); ok {
		if extends, ok := heritage.FirstOfKind("extends_clause"); ok {
			for _, parent := range extends.NamedChildren() {
				if parent.Kind() == "type_arguments" {
					continue
				}
				item.Extends = append(item.Extends, parent.TrimmedText())
			}
		}
		if impls, ok := heritage.FirstOfKind("implements_clause"); ok {
			for _, iface := range impls.NamedChildren() {
				item.Implements = append(item.Implements, iface.TrimmedText())
			}
		}
	}

	body, ok := stmt.Field("body")
	if !ok {
		return item
	}
	for _, member := range body.NamedChildren() {
		switch member.Kind() {
		case "method_definition", "abstract_method_signature":
			if name, _ := member.FieldText("name"); name == "constructor" {
				item.Constructors = append(item.Constructors, w.constructor(item.Name, member))
				continue
			}
			item.Methods = append(item.Methods, w.method(member))
		case "public_field_definition":
			item.Properties = append(item.Properties, w.property(member))
		case "index_signature":
			item.IndexSignatures = append(item.IndexSignatures, parseIndexSignature(member))
		}
	}
	return item
}

func (w *walker) constructor(owner string, member frontend.Node) extraction.Constructor {
	ctor := extraction.Constructor{Owner: owner, Position: member.Position()}
	if params, ok := member.FirstOfKind("formal_parameters"); ok {
		ctor.Arguments = w.parameters(params)
	}
	for _, dec := range member.AllOfKind("decorator") {
		ctor.Decorators = append(ctor.Decorators, w.decorator(dec))
	}
	if doc, ok := member.DocComment(); ok {
		ctor.Doc = doc
	}
	return ctor
}

func (w *walker) method(member frontend.Node) extraction.Method {
	m := extraction.Method{
		Static:        member.HasChild("static"),
		Async:         member.HasChild("async"),
		Abstract:      member.Kind() == "abstract_method_signature" || member.HasChild("abstract"),
		Getter:        member.HasChild("get"),
		Setter:        member.HasChild("set"),
		Accessibility: accessibility(member),
		Position:      member.Position(),
	}
	if name, ok := member.FieldText("name"); ok {
		m.Name = name
	}
	m.TypeParameters = w.typeParameters(member)
	if params, ok := member.FirstOfKind("formal_parameters"); ok {
		m.Arguments = w.parameters(params)
	}
	m.ReturnType, m.ParsedReturnType = normalizeAnnotation(member.Field("return_type"))
	for _, dec := range member.AllOfKind("decorator") {
		m.Decorators = append(m.Decorators, w.decorator(dec))
	}
	if doc, ok := member.DocComment(); ok {
		m.Doc = doc
	}
	return m
}

func (w *walker) property(member frontend.Node) extraction.Property {
	p := extraction.Property{
		Static:        member.HasChild("static"),
		Readonly:      member.HasChild("readonly"),
		Optional:      member.HasChild("?"),
		Accessibility: accessibility(member),
		Position:      member.Position(),
	}
	if name, ok := member.FieldText("name"); ok {
		p.Name = name
	}
	p.Type, p.ParsedType = normalizeAnnotation(member.Field("type"))
	if value, ok := member.Field("value"); ok {
		p.Value = parseLiteral(value)
		p.Raw = rawText(value)
	}
	for _, dec := range member.AllOfKind("decorator") {
		p.Decorators = append(p.Decorators, w.decorator(dec))
	}
	if doc, ok := member.DocComment(); ok {
		p.Doc = doc
	}
	return p
}

func accessibility(member frontend.Node) string {
	if modifier, ok := member.FirstOfKind("accessibility_modifier"); ok {
		return modifier.TrimmedText()
	}
	return ""
}

func (w *walker) interfaceDecl(stmt frontend.Node, exp exportInfo) extraction.Item {
	item := w.base(extraction.KindInterface, stmt, exp)
	item.TypeParameters = w.typeParameters(stmt)

	if extends, ok := stmt.FirstOfKind("extends_type_clause"); ok {
		for _, parent := range extends.NamedChildren() {
			item.Extends = append(item.Extends, parent.TrimmedText())
		}
	}

	body, ok := stmt.Field("body")
	if !ok {
		return item
	}
	for _, member := range body.NamedChildren() {
		switch member.Kind() {
		case "property_signature":
			prop := extraction.Property{
				Optional: member.HasChild("?"),
				Readonly: member.HasChild("readonly"),
				Position: member.Position(),
			}
			if name, ok := member.FieldText("name"); ok {
				prop.Name = name
			}
			prop.Type, prop.ParsedType = normalizeAnnotation(member.Field("type"))
			if doc, ok := member.DocComment(); ok {
				prop.Doc = doc
			}
			item.Properties = append(item.Properties, prop)
		case "method_signature", "construct_signature", "call_signature":
			item.Methods = append(item.Methods, w.method(member))
		case "index_signature":
			item.IndexSignatures = append(item.IndexSignatures, parseIndexSignature(member))
		}
	}
	return item
}

func (w *walker) typeAlias(stmt frontend.Node, exp exportInfo) extraction.Item {
	item := w.base(extraction.KindTypeAlias, stmt, exp)
	item.TypeParameters = w.typeParameters(stmt)
	if target, ok := stmt.Field("value"); ok {
		item.Type = target.TrimmedText()
		item.ParsedType = Normalize(target)
	}
	return item
}

func (w *walker) enum(stmt frontend.Node, exp exportInfo) extraction.Item {
	item := w.base(extraction.KindEnum, stmt, exp)
	item.IsConst = stmt.HasChild("const")

	body, ok := stmt.Field("body")
	if !ok {
		return item
	}
	for _, member := range body.NamedChildren() {
		em := extraction.EnumMember{Position: member.Position()}
		switch member.Kind() {
		case "enum_assignment":
			if name, ok := member.Field("name"); ok {
				em.Name = enumMemberName(name)
			}
			if value, ok := member.Field("value"); ok {
				em.Value = parseLiteral(value)
			}
		case "property_identifier", "string", "computed_property_name":
			em.Name = enumMemberName(member)
		default:
			continue
		}
		if doc, ok := member.DocComment(); ok {
			em.Doc = doc
		}
		item.EnumMembers = append(item.EnumMembers, em)
	}
	return item
}

func enumMemberName(node frontend.Node) string {
	if node.Kind() == "string" {
		return stringContent(node)
	}
	return node.TrimmedText()
}

// namespace models `namespace N { ... }` and `module "m" { ... }`. The body
// is unpacked with the same statement walk, so namespaces nest arbitrarily;
// every member produced inside any namespace body is a nested-level item.
func (w *walker) namespace(stmt frontend.Node, exp exportInfo) (extraction.Item, bool) {
	item := w.base(extraction.KindNamespace, stmt, exp)
	item.Name = strings.Trim(item.Name, "\"'")
	if item.Name == "" {
		for _, child := range stmt.NamedChildren() {
			kind := child.Kind()
			if kind == "identifier" || kind == "nested_identifier" || kind == "string" {
				item.Name = strings.Trim(child.TrimmedText(), "\"'")
				break
			}
		}
	}
	if item.Name == "" {
		return extraction.Item{}, false
	}

	if body, ok := stmt.Field("body"); ok {
		item.Members = extractStatements(frontend.StatementsOf(body), extraction.LevelNested)
	} else if body, ok := stmt.FirstOfKind("statement_block"); ok {
		item.Members = extractStatements(frontend.StatementsOf(body), extraction.LevelNested)
	}
	return item, true
}

// parameters models a formal parameter list, including parameter property
// shorthand (constructor(private readonly x: T)).
func (w *walker) parameters(params frontend.Node) []extraction.Parameter {
	var out []extraction.Parameter
	for _, param := range params.NamedChildren() {
		kind := param.Kind()
		if kind != "required_parameter" && kind != "optional_parameter" {
			continue
		}
		p := extraction.Parameter{
			Optional: kind == "optional_parameter",
			Position: param.Position(),
		}
		if pattern, ok := param.Field("pattern"); ok {
			if pattern.Kind() == "rest_pattern" {
				p.Rest = true
				p.Name = strings.TrimPrefix(pattern.TrimmedText(), "...")
			} else {
				p.Name = pattern.TrimmedText()
			}
		}
		if annotation, ok := param.Field("type"); ok {
			p.Type, p.ParsedType = normalizeAnnotation(annotation, true)
			p.HasType = p.Type != ""
		}
		if value, ok := param.Field("value"); ok {
			p.DefaultValue = parseLiteral(value)
			p.DefaultRaw = rawText(value)
		}
		for _, dec := range param.AllOfKind("decorator") {
			p.Decorators = append(p.Decorators, w.decorator(dec))
		}
		out = append(out, p)
	}
	return out
}

func (w *walker) typeParameters(stmt frontend.Node) []extraction.TypeParameter {
	params, ok := stmt.FirstOfKind("type_parameters")
	if !ok {
		return nil
	}
	var out []extraction.TypeParameter
	for _, param := range params.NamedChildren() {
		if param.Kind() != "type_parameter" {
			continue
		}
		tp := extraction.TypeParameter{}
		if name, ok := param.FieldText("name"); ok {
			tp.Name = name
		} else if id, ok := param.FirstOfKind("type_identifier"); ok {
			tp.Name = id.TrimmedText()
		}
		if constraint, ok := param.FirstOfKind("constraint"); ok {
			if inner := constraint.NamedChildren(); len(inner) > 0 {
				tp.Constraint = inner[0].TrimmedText()
			}
		}
		if def, ok := param.FirstOfKind("default_type"); ok {
			if inner := def.NamedChildren(); len(inner) > 0 {
				tp.Default = inner[0].TrimmedText()
			}
		}
		out = append(out, tp)
	}
	return out
}

// decorator models @name or @name(args). Arguments keeps raw source text.
func (w *walker) decorator(dec frontend.Node) extraction.Decorator {
	d := extraction.Decorator{Text: dec.TrimmedText()}
	for _, child := range dec.NamedChildren() {
		switch child.Kind() {
		case "identifier", "member_expression":
			d.Name = child.TrimmedText()
		case "call_expression":
			if fn, ok := child.Field("function"); ok {
				d.Name = fn.TrimmedText()
			}
			if args, ok := child.Field("arguments"); ok {
				for _, arg := range args.NamedChildren() {
					d.Arguments = append(d.Arguments, arg.TrimmedText())
				}
			}
		}
	}
	if d.Name == "" {
		d.Name = strings.TrimPrefix(d.Text, "@")
	}
	return d
}
