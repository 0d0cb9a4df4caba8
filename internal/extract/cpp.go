package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// cppExtractor maps tree-sitter-cpp node kinds to symbols and imports.
// Class member visibility is positional: an access specifier applies to
// every member that follows it, with struct defaulting to public and
// class to private.
type cppExtractor struct{}

// NewCpp returns the extractor for C++ source files and headers.
func NewCpp() Extractor { return &cppExtractor{} }

func (e *cppExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "class_specifier":
			e.collectClass(n, false, src, res)
			return false

		case "struct_specifier":
			e.collectClass(n, true, src, res)
			return false

		case "namespace_definition":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindNamespace)
				sym.Exported = true
				res.Symbols = append(res.Symbols, sym)
			}
			return true

		case "function_definition":
			e.collectFunction(n, "", true, src, res)
			return false

		case "enum_specifier":
			if childByField(n, "body") != nil {
				if name := text(childByField(n, "name"), src); name != "" {
					sym := newSymbol(n, name, KindType)
					sym.Exported = true
					res.Symbols = append(res.Symbols, sym)
				}
			}
			return false

		case "type_definition":
			if name := text(childByField(n, "declarator"), src); name != "" {
				sym := newSymbol(n, name, KindType)
				sym.Exported = true
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "alias_declaration": // using Name = Type;
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindType)
				sym.Exported = true
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "preproc_include":
			if path := unquote(text(childByField(n, "path"), src)); path != "" {
				res.Imports = append(res.Imports, newImport(n, "_", path))
			}
			return false

		case "using_declaration": // using std::vector;
			t := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(text(n, src), "using")), ";")
			t = strings.TrimSpace(strings.TrimPrefix(t, "namespace"))
			if t != "" {
				imp := newImport(n, lastSegment(t), t)
				imp.IsNamespace = strings.Contains(text(n, src), "namespace")
				res.Imports = append(res.Imports, imp)
			}
			return false
		}
		return true
	})

	return finishResult(root, res)
}

// collectClass records the class itself, then scans its body in source
// order tracking the current access region.
func (e *cppExtractor) collectClass(n *sitter.Node, isStruct bool, src []byte, res *Result) {
	body := childByField(n, "body")
	name := text(childByField(n, "name"), src)
	if name != "" && body != nil {
		sym := newSymbol(n, name, KindClass)
		sym.Exported = true
		res.Symbols = append(res.Symbols, sym)
	}
	if body == nil {
		return
	}

	visible := isStruct
	for i := 0; i < int(body.ChildCount()); i++ {
		c := body.Child(i)
		switch c.Type() {
		case "access_specifier":
			visible = text(c, src) == "public"

		case "function_definition":
			e.collectFunction(c, name, visible, src, res)

		case "field_declaration":
			e.collectMember(c, name, visible, src, res)

		case "class_specifier":
			e.collectClass(c, false, src, res)

		case "struct_specifier":
			e.collectClass(c, true, src, res)
		}
	}
}

// collectMember records in-class declarations: method prototypes and data
// members.
func (e *cppExtractor) collectMember(n *sitter.Node, scope string, visible bool, src []byte, res *Result) {
	decl := childByField(n, "declarator")
	if fnDecl := findFunctionDeclarator(decl); fnDecl != nil {
		name := text(unwrapDeclarator(childByField(fnDecl, "declarator")), src)
		if name == "" {
			return
		}
		sym := newSymbol(n, name, KindMethod)
		sym.Scope = scope
		sym.Exported = visible
		sym.Signature = text(childByField(fnDecl, "parameters"), src)
		res.Symbols = append(res.Symbols, sym)
		return
	}

	id := unwrapDeclarator(decl)
	if id == nil {
		return
	}
	sym := newSymbol(n, text(id, src), KindProperty)
	sym.Scope = scope
	sym.Exported = visible
	res.Symbols = append(res.Symbols, sym)
}

// collectFunction records free functions, in-class method definitions, and
// out-of-line qualified definitions (Foo::bar).
func (e *cppExtractor) collectFunction(n *sitter.Node, scope string, visible bool, src []byte, res *Result) {
	fnDecl := findFunctionDeclarator(childByField(n, "declarator"))
	if fnDecl == nil {
		return
	}

	kind := KindFunction
	inner := childByField(fnDecl, "declarator")
	name := ""
	if inner != nil && inner.Type() == "qualified_identifier" {
		scope = text(childByField(inner, "scope"), src)
		name = text(childByField(inner, "name"), src)
		kind = KindMethod
	} else {
		name = text(unwrapDeclarator(inner), src)
	}
	if name == "" {
		return
	}
	if scope != "" {
		kind = KindMethod
	}

	sym := newSymbol(n, name, kind)
	sym.Scope = scope
	sym.Exported = visible && !hasStorageClass(n, "static", src)
	sym.Signature = text(childByField(fnDecl, "parameters"), src)
	res.Symbols = append(res.Symbols, sym)
}
