package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// cExtractor maps tree-sitter-c node kinds to symbols and imports.
// File-scope names with static storage class have internal linkage and
// are unexported; everything else is visible to the linker.
type cExtractor struct{}

// NewC returns the extractor for C source files and headers.
func NewC() Extractor { return &cExtractor{} }

func (e *cExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition":
			e.collectFunction(n, src, res)
			return false

		case "struct_specifier", "union_specifier":
			e.collectTagged(n, KindClass, src, res)
			return true

		case "enum_specifier":
			e.collectTagged(n, KindType, src, res)
			return false

		case "type_definition":
			if name := text(childByField(n, "declarator"), src); name != "" {
				sym := newSymbol(n, name, KindType)
				sym.Exported = true
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "declaration":
			e.collectDeclaration(n, src, res)
			return false

		case "preproc_include":
			if path := unquote(text(childByField(n, "path"), src)); path != "" {
				res.Imports = append(res.Imports, newImport(n, "_", path))
			}
			return false

		case "preproc_def", "preproc_function_def":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindConst)
				sym.Exported = true
				if n.Type() == "preproc_function_def" {
					sym.Kind = KindFunction
					sym.Signature = text(childByField(n, "parameters"), src)
				}
				res.Symbols = append(res.Symbols, sym)
			}
			return false
		}
		return true
	})

	return finishResult(root, res)
}

func (e *cExtractor) collectFunction(n *sitter.Node, src []byte, res *Result) {
	fnDecl := findFunctionDeclarator(childByField(n, "declarator"))
	if fnDecl == nil {
		return
	}
	name := text(unwrapDeclarator(childByField(fnDecl, "declarator")), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, KindFunction)
	sym.Exported = !hasStorageClass(n, "static", src)
	sym.Signature = text(childByField(fnDecl, "parameters"), src)
	res.Symbols = append(res.Symbols, sym)
}

// collectTagged records named struct/union/enum definitions. Bare forward
// references (no body) are uses, not declarations.
func (e *cExtractor) collectTagged(n *sitter.Node, kind Kind, src []byte, res *Result) {
	if childByField(n, "body") == nil {
		return
	}
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, kind)
	sym.Exported = true
	res.Symbols = append(res.Symbols, sym)
}

// collectDeclaration records file-scope variables. Function prototypes are
// skipped: the definition is the declaration of record.
func (e *cExtractor) collectDeclaration(n *sitter.Node, src []byte, res *Result) {
	if p := n.Parent(); p == nil || p.Type() != "translation_unit" {
		return
	}
	decl := childByField(n, "declarator")
	if decl == nil || findFunctionDeclarator(decl) != nil {
		return
	}
	id := unwrapDeclarator(decl)
	if id == nil {
		return
	}
	name := text(id, src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, KindVariable)
	sym.Exported = !hasStorageClass(n, "static", src)
	res.Symbols = append(res.Symbols, sym)
}

// unwrapDeclarator descends through pointer/array/init declarators to the
// underlying identifier.
func unwrapDeclarator(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "identifier", "field_identifier", "type_identifier":
			return n
		case "pointer_declarator", "array_declarator", "init_declarator", "parenthesized_declarator":
			n = childByField(n, "declarator")
		default:
			return nil
		}
	}
	return nil
}

// findFunctionDeclarator locates the function_declarator inside a possibly
// pointer-wrapped declarator chain.
func findFunctionDeclarator(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "function_declarator":
			return n
		case "pointer_declarator", "parenthesized_declarator":
			n = childByField(n, "declarator")
		default:
			return nil
		}
	}
	return nil
}

func hasStorageClass(n *sitter.Node, class string, src []byte) bool {
	for _, spec := range childrenByType(n, "storage_class_specifier") {
		if text(spec, src) == class {
			return true
		}
	}
	return false
}
