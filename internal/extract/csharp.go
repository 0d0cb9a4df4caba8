package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// csharpExtractor maps tree-sitter-c-sharp node kinds to symbols and
// imports. Exported means carrying the explicit public modifier.
type csharpExtractor struct{}

// NewCSharp returns the extractor for C# source files.
func NewCSharp() Extractor { return &csharpExtractor{} }

var csharpContainerTypes = []string{
	"class_declaration", "interface_declaration", "struct_declaration",
	"record_declaration", "enum_declaration",
}

func (e *csharpExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "namespace_declaration", "file_scoped_namespace_declaration":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindNamespace)
				sym.Exported = true
				res.Symbols = append(res.Symbols, sym)
			}
			return true

		case "class_declaration", "record_declaration", "struct_declaration":
			e.addContainer(n, KindClass, src, res)
			return true

		case "interface_declaration":
			e.addContainer(n, KindInterface, src, res)
			return true

		case "enum_declaration", "delegate_declaration":
			e.addContainer(n, KindType, src, res)
			return false

		case "method_declaration", "constructor_declaration":
			name := text(childByField(n, "name"), src)
			if name == "" {
				return false
			}
			sym := newSymbol(n, name, KindMethod)
			sym.Scope = csharpScope(n, src)
			sym.Exported = csharpPublic(n, src)
			sym.Signature = text(childByField(n, "parameters"), src)
			res.Symbols = append(res.Symbols, sym)
			return false

		case "property_declaration":
			name := text(childByField(n, "name"), src)
			if name == "" {
				return false
			}
			sym := newSymbol(n, name, KindProperty)
			sym.Scope = csharpScope(n, src)
			sym.Exported = csharpPublic(n, src)
			res.Symbols = append(res.Symbols, sym)
			return false

		case "field_declaration":
			e.collectField(n, src, res)
			return false

		case "using_directive":
			e.collectUsing(n, src, res)
			return false
		}
		return true
	})

	return finishResult(root, res)
}

func (e *csharpExtractor) addContainer(n *sitter.Node, kind Kind, src []byte, res *Result) {
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, kind)
	sym.Scope = csharpScope(n, src)
	sym.Exported = csharpPublic(n, src)
	res.Symbols = append(res.Symbols, sym)
}

// collectField records class fields; the const modifier marks constants.
func (e *csharpExtractor) collectField(n *sitter.Node, src []byte, res *Result) {
	kind := KindVariable
	if csharpHasModifier(n, "const", src) {
		kind = KindConst
	}
	decl := childByType(n, "variable_declaration")
	for _, d := range childrenByType(decl, "variable_declarator") {
		id := childByField(d, "name")
		if id == nil {
			id = childByType(d, "identifier")
		}
		name := text(id, src)
		if name == "" {
			continue
		}
		sym := newSymbol(n, name, kind)
		sym.Scope = csharpScope(n, src)
		sym.Exported = csharpPublic(n, src)
		res.Symbols = append(res.Symbols, sym)
	}
}

// collectUsing handles plain, aliased, and static using directives. A using
// brings a whole namespace into scope, so it is recorded as a namespace
// import.
func (e *csharpExtractor) collectUsing(n *sitter.Node, src []byte, res *Result) {
	target := childByType(n, "qualified_name", "identifier", "member_access_expression")
	if target == nil {
		return
	}
	path := text(target, src)
	imp := newImport(n, "*", path)
	imp.IsNamespace = true
	if alias := childByType(n, "name_equals"); alias != nil {
		imp.LocalName = text(childByType(alias, "identifier"), src)
		imp.Name = lastSegment(path)
		imp.IsNamespace = false
	}
	res.Imports = append(res.Imports, imp)
}

// csharpScope names the enclosing container for nested declarations.
func csharpScope(n *sitter.Node, src []byte) string {
	enc := nearestAncestor(n, csharpContainerTypes...)
	return text(childByField(enc, "name"), src)
}

// csharpHasModifier reports whether the declaration carries the given
// modifier keyword.
func csharpHasModifier(n *sitter.Node, mod string, src []byte) bool {
	for _, m := range childrenByType(n, "modifier") {
		if text(m, src) == mod {
			return true
		}
	}
	return false
}

func csharpPublic(n *sitter.Node, src []byte) bool {
	return csharpHasModifier(n, "public", src)
}
