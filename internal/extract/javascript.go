package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// scriptExtractor covers the ECMAScript family. The TypeScript and TSX
// grammars are supersets of the JavaScript one, so a single walk handles
// all four dialects; TypeScript-only node kinds simply never appear in
// JavaScript trees.
type scriptExtractor struct {
	typescript bool
}

// NewJavaScript returns the extractor for JavaScript and JSX source files.
func NewJavaScript() Extractor { return &scriptExtractor{} }

// NewTypeScript returns the extractor for TypeScript and TSX source files.
func NewTypeScript() Extractor { return &scriptExtractor{typescript: true} }

var scriptClassTypes = []string{"class_declaration", "abstract_class_declaration"}

func (e *scriptExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_declaration", "generator_function_declaration":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindFunction)
				sym.Exported = isScriptExported(n)
				sym.Signature = text(childByField(n, "parameters"), src)
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "class_declaration", "abstract_class_declaration":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindClass)
				sym.Exported = isScriptExported(n)
				res.Symbols = append(res.Symbols, sym)
			}
			return true // descend for methods and fields

		case "method_definition":
			e.collectMethod(n, src, res)
			return false

		case "field_definition", "public_field_definition":
			e.collectField(n, src, res)
			return false

		case "interface_declaration":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindInterface)
				sym.Exported = isScriptExported(n)
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "type_alias_declaration", "enum_declaration":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindType)
				sym.Exported = isScriptExported(n)
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "internal_module": // namespace X { ... }
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindNamespace)
				sym.Exported = isScriptExported(n)
				res.Symbols = append(res.Symbols, sym)
			}
			return true

		case "lexical_declaration", "variable_declaration":
			e.collectDeclarators(n, src, res)
			return false

		case "import_statement":
			e.collectImport(n, src, res)
			return false
		}
		return true
	})

	return finishResult(root, res)
}

// collectMethod records a class method, scoped to its enclosing class.
// Private members (TS accessibility modifier or #-prefixed names) are
// unexported.
func (e *scriptExtractor) collectMethod(n *sitter.Node, src []byte, res *Result) {
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, KindMethod)
	sym.Scope = enclosingScriptClass(n, src)
	sym.Exported = scriptMemberVisible(n, name, src)
	sym.Signature = text(childByField(n, "parameters"), src)
	res.Symbols = append(res.Symbols, sym)
}

// collectField records a class field as a property symbol.
func (e *scriptExtractor) collectField(n *sitter.Node, src []byte, res *Result) {
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, KindProperty)
	sym.Scope = enclosingScriptClass(n, src)
	sym.Exported = scriptMemberVisible(n, name, src)
	res.Symbols = append(res.Symbols, sym)
}

// collectDeclarators handles const/let/var statements. A declarator whose
// value is an arrow function or function expression is a function symbol;
// a declarator initialized from require() doubles as a CommonJS import.
func (e *scriptExtractor) collectDeclarators(n *sitter.Node, src []byte, res *Result) {
	// Only module-level bindings are symbols; locals inside function bodies
	// are noise for an index.
	if nearestAncestor(n, "statement_block", "function_declaration", "arrow_function", "method_definition") != nil {
		return
	}

	kind := KindVariable
	if strings.HasPrefix(text(n, src), "const") {
		kind = KindConst
	}

	for _, decl := range childrenByType(n, "variable_declarator") {
		name := text(childByField(decl, "name"), src)
		if name == "" {
			continue
		}

		value := childByField(decl, "value")
		if path, ok := requireCallPath(value, src); ok {
			imp := newImport(n, name, path)
			res.Imports = append(res.Imports, imp)
			continue
		}

		sym := newSymbol(n, name, kind)
		if value != nil {
			switch value.Type() {
			case "arrow_function", "function_expression", "function", "generator_function":
				sym.Kind = KindFunction
				sym.Signature = text(childByField(value, "parameters"), src)
			}
		}
		sym.Exported = isScriptExported(n)
		res.Symbols = append(res.Symbols, sym)
	}
}

// collectImport decodes an ES module import statement into one Import per
// bound identifier. Side-effect imports (import "x") yield a single "_".
func (e *scriptExtractor) collectImport(n *sitter.Node, src []byte, res *Result) {
	path := unquote(text(childByField(n, "source"), src))
	if path == "" {
		return
	}

	clause := childByType(n, "import_clause")
	if clause == nil {
		imp := newImport(n, "_", path)
		res.Imports = append(res.Imports, imp)
		return
	}

	bound := false
	for i := 0; i < int(clause.ChildCount()); i++ {
		c := clause.Child(i)
		switch c.Type() {
		case "identifier": // default import
			imp := newImport(n, "default", path)
			imp.LocalName = text(c, src)
			res.Imports = append(res.Imports, imp)
			bound = true

		case "namespace_import": // * as ns
			imp := newImport(n, "*", path)
			imp.IsNamespace = true
			imp.LocalName = text(childByType(c, "identifier"), src)
			res.Imports = append(res.Imports, imp)
			bound = true

		case "named_imports":
			for _, spec := range childrenByType(c, "import_specifier") {
				name := text(childByField(spec, "name"), src)
				if name == "" {
					continue
				}
				imp := newImport(n, name, path)
				imp.LocalName = text(childByField(spec, "alias"), src)
				res.Imports = append(res.Imports, imp)
				bound = true
			}
		}
	}

	if !bound {
		imp := newImport(n, "_", path)
		res.Imports = append(res.Imports, imp)
	}
}

// requireCallPath matches require("...") call expressions.
func requireCallPath(value *sitter.Node, src []byte) (string, bool) {
	if value == nil || value.Type() != "call_expression" {
		return "", false
	}
	if text(childByField(value, "function"), src) != "require" {
		return "", false
	}
	args := childByField(value, "arguments")
	str := childByType(args, "string")
	if str == nil {
		return "", false
	}
	return unquote(text(str, src)), true
}

// isScriptExported reports whether a declaration is wrapped in an export
// statement.
func isScriptExported(n *sitter.Node) bool {
	if p := n.Parent(); p != nil && p.Type() == "export_statement" {
		return true
	}
	return false
}

// scriptMemberVisible applies TypeScript accessibility modifiers and the
// ECMAScript #private convention to class members.
func scriptMemberVisible(n *sitter.Node, name string, src []byte) bool {
	if strings.HasPrefix(name, "#") {
		return false
	}
	if mod := childByType(n, "accessibility_modifier"); mod != nil {
		m := text(mod, src)
		return m != "private" && m != "protected"
	}
	return true
}

// enclosingScriptClass returns the name of the nearest enclosing class.
func enclosingScriptClass(n *sitter.Node, src []byte) string {
	cls := nearestAncestor(n, scriptClassTypes...)
	return text(childByField(cls, "name"), src)
}
