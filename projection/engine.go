package projection

import "github.com/Kryft-Studios/parsee/extraction"

// Apply prunes a declaration tree under the given policy and returns the
// pruned tree. The input is never mutated: every shape is copied before its
// fields are cleared. Pruning only removes data, so Apply(Apply(x, p), p)
// equals Apply(x, p).
func Apply(items []extraction.Item, policy Policy) []extraction.Item {
	if items == nil {
		return nil
	}
	out := make([]extraction.Item, len(items))
	for i, item := range items {
		out[i] = pruneItem(item, policy)
	}
	return out
}

func pruneItem(item extraction.Item, p Policy) extraction.Item {
	if !p.Keep(FieldName) {
		item.Name = ""
	}
	if !p.Keep(FieldSubtype) {
		item.Subtype = ""
	}
	if !p.Keep(FieldExports) {
		item.Exports = ""
	}
	if !p.Keep(FieldLevel) {
		item.Level = ""
	}
	if !p.Keep(FieldDoc) {
		item.Doc = ""
	}
	if !p.Keep(FieldPosition) {
		item.Position = nil
	}
	if !p.Keep(FieldValue) {
		item.Value = nil
	}
	if !p.Keep(FieldRaw) {
		item.Raw = ""
	}
	if !p.Keep(FieldType) {
		item.Type = ""
	}
	if !p.Keep(FieldParsedType) {
		item.ParsedType = nil
	}
	if !p.Keep(FieldReturnType) {
		item.ReturnType = ""
	}
	if !p.Keep(FieldParsedReturnType) {
		item.ParsedReturnType = nil
	}
	if !p.Keep(FieldTypeParameters) {
		item.TypeParameters = nil
	}
	if !p.Keep(FieldExtends) {
		item.Extends = nil
	}
	if !p.Keep(FieldImplements) {
		item.Implements = nil
	}
	if !p.Keep(FieldAsync) {
		item.IsAsync = false
	}
	if !p.Keep(FieldAbstract) {
		item.IsAbstract = false
	}
	if !p.Keep(FieldModifiers) {
		item.IsGenerator = false
		item.IsConst = false
	}

	item.Decorators = pruneDecorators(item.Decorators, p)
	item.Arguments = pruneParameters(item.Arguments, p)

	if !p.Keep(FieldConstructors) {
		item.Constructors = nil
	} else if item.Constructors != nil {
		ctors := make([]extraction.Constructor, len(item.Constructors))
		for i, c := range item.Constructors {
			ctors[i] = pruneConstructor(c, p)
		}
		item.Constructors = ctors
	}

	if !p.Keep(FieldProperties) {
		item.Properties = nil
	} else if item.Properties != nil {
		props := make([]extraction.Property, len(item.Properties))
		for i, prop := range item.Properties {
			props[i] = pruneProperty(prop, p)
		}
		item.Properties = props
	}

	if !p.Keep(FieldMethods) {
		item.Methods = nil
	} else if item.Methods != nil {
		methods := make([]extraction.Method, len(item.Methods))
		for i, m := range item.Methods {
			methods[i] = pruneMethod(m, p)
		}
		item.Methods = methods
	}

	if !p.Keep(FieldIndexSignatures) {
		item.IndexSignatures = nil
	} else if item.IndexSignatures != nil {
		sigs := make([]extraction.IndexSignature, len(item.IndexSignatures))
		for i, sig := range item.IndexSignatures {
			sigs[i] = pruneIndexSignature(sig, p)
		}
		item.IndexSignatures = sigs
	}

	if !p.Keep(FieldMembers) {
		item.EnumMembers = nil
		item.Members = nil
	} else {
		if item.EnumMembers != nil {
			members := make([]extraction.EnumMember, len(item.EnumMembers))
			for i, m := range item.EnumMembers {
				members[i] = pruneEnumMember(m, p)
			}
			item.EnumMembers = members
		}
		item.Members = Apply(item.Members, p)
	}

	return item
}

func pruneDecorators(decorators []extraction.Decorator, p Policy) []extraction.Decorator {
	if !p.Keep(FieldDecorators) || decorators == nil {
		return nil
	}
	out := make([]extraction.Decorator, len(decorators))
	for i, d := range decorators {
		if !p.Keep(FieldName) {
			d.Name = ""
		}
		if !p.Keep(FieldArguments) {
			d.Arguments = nil
		}
		out[i] = d
	}
	return out
}

func pruneParameters(params []extraction.Parameter, p Policy) []extraction.Parameter {
	if !p.Keep(FieldArguments) || params == nil {
		return nil
	}
	out := make([]extraction.Parameter, len(params))
	for i, param := range params {
		if !p.Keep(FieldName) {
			param.Name = ""
		}
		if !p.Keep(FieldType) {
			param.Type = ""
			param.HasType = false
		}
		if !p.Keep(FieldParsedType) {
			param.ParsedType = nil
		}
		if !p.Keep(FieldOptional) {
			param.Optional = false
		}
		if !p.Keep(FieldModifiers) {
			param.Rest = false
		}
		if !p.Keep(FieldDefaultValue) {
			param.DefaultValue = nil
			param.DefaultRaw = ""
		}
		if !p.Keep(FieldPosition) {
			param.Position = nil
		}
		param.Decorators = pruneDecorators(param.Decorators, p)
		out[i] = param
	}
	return out
}

func pruneConstructor(c extraction.Constructor, p Policy) extraction.Constructor {
	if !p.Keep(FieldName) {
		c.Owner = ""
	}
	if !p.Keep(FieldPosition) {
		c.Position = nil
	}
	if !p.Keep(FieldDoc) {
		c.Doc = ""
	}
	c.Arguments = pruneParameters(c.Arguments, p)
	c.Decorators = pruneDecorators(c.Decorators, p)
	return c
}

func pruneProperty(prop extraction.Property, p Policy) extraction.Property {
	if !p.Keep(FieldName) {
		prop.Name = ""
	}
	if !p.Keep(FieldType) {
		prop.Type = ""
	}
	if !p.Keep(FieldParsedType) {
		prop.ParsedType = nil
	}
	if !p.Keep(FieldValue) {
		prop.Value = nil
	}
	if !p.Keep(FieldRaw) {
		prop.Raw = ""
	}
	if !p.Keep(FieldOptional) {
		prop.Optional = false
	}
	if !p.Keep(FieldStatic) {
		prop.Static = false
	}
	if !p.Keep(FieldReadonly) {
		prop.Readonly = false
	}
	if !p.Keep(FieldAccessibility) {
		prop.Accessibility = ""
	}
	if !p.Keep(FieldPosition) {
		prop.Position = nil
	}
	if !p.Keep(FieldDoc) {
		prop.Doc = ""
	}
	prop.Decorators = pruneDecorators(prop.Decorators, p)
	return prop
}

func pruneMethod(m extraction.Method, p Policy) extraction.Method {
	if !p.Keep(FieldName) {
		m.Name = ""
	}
	if !p.Keep(FieldAccessibility) {
		m.Accessibility = ""
	}
	if !p.Keep(FieldStatic) {
		m.Static = false
	}
	if !p.Keep(FieldAsync) {
		m.Async = false
	}
	if !p.Keep(FieldAbstract) {
		m.Abstract = false
	}
	if !p.Keep(FieldAccessors) {
		m.Getter = false
		m.Setter = false
	}
	if !p.Keep(FieldTypeParameters) {
		m.TypeParameters = nil
	}
	if !p.Keep(FieldReturnType) {
		m.ReturnType = ""
	}
	if !p.Keep(FieldParsedReturnType) {
		m.ParsedReturnType = nil
	}
	if !p.Keep(FieldPosition) {
		m.Position = nil
	}
	if !p.Keep(FieldDoc) {
		m.Doc = ""
	}
	m.Arguments = pruneParameters(m.Arguments, p)
	m.Decorators = pruneDecorators(m.Decorators, p)
	return m
}

func pruneIndexSignature(sig extraction.IndexSignature, p Policy) extraction.IndexSignature {
	if !p.Keep(FieldType) {
		sig.KeyType = ""
		sig.Type = ""
	}
	if !p.Keep(FieldReadonly) {
		sig.Readonly = false
	}
	return sig
}

func pruneEnumMember(m extraction.EnumMember, p Policy) extraction.EnumMember {
	if !p.Keep(FieldName) {
		m.Name = ""
	}
	if !p.Keep(FieldValue) {
		m.Value = nil
	}
	if !p.Keep(FieldPosition) {
		m.Position = nil
	}
	if !p.Keep(FieldDoc) {
		m.Doc = ""
	}
	return m
}
