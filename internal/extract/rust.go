package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// rustExtractor maps tree-sitter-rust node kinds to symbols and imports.
// Only unrestricted `pub` counts as exported; pub(crate) and pub(super)
// are crate-internal.
type rustExtractor struct{}

// NewRust returns the extractor for Rust source files.
func NewRust() Extractor { return &rustExtractor{} }

func (e *rustExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_item":
			e.addFn(n, "", KindFunction, src, res)
			return false

		case "impl_item":
			e.scanImpl(n, src, res)
			return false

		case "trait_item":
			name := text(childByField(n, "name"), src)
			if name != "" {
				sym := newSymbol(n, name, KindInterface)
				sym.Exported = rustPub(n, src)
				res.Symbols = append(res.Symbols, sym)
			}
			e.scanTraitBody(n, name, src, res)
			return false

		case "struct_item", "union_item":
			e.addNamed(n, KindClass, src, res)
			return false

		case "enum_item":
			e.addNamed(n, KindType, src, res)
			return false

		case "type_item":
			e.addNamed(n, KindType, src, res)
			return false

		case "const_item":
			e.addNamed(n, KindConst, src, res)
			return false

		case "static_item":
			e.addNamed(n, KindVariable, src, res)
			return false

		case "mod_item":
			e.addNamed(n, KindNamespace, src, res)
			return true // inline modules contain more items

		case "macro_definition":
			e.addNamed(n, KindFunction, src, res)
			return false

		case "use_declaration":
			e.collectUse(childByField(n, "argument"), n, src, res)
			return false
		}
		return true
	})

	return finishResult(root, res)
}

func (e *rustExtractor) addNamed(n *sitter.Node, kind Kind, src []byte, res *Result) {
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, kind)
	sym.Exported = rustPub(n, src)
	res.Symbols = append(res.Symbols, sym)
}

func (e *rustExtractor) addFn(n *sitter.Node, scope string, kind Kind, src []byte, res *Result) {
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, kind)
	sym.Scope = scope
	sym.Exported = rustPub(n, src)
	sym.Signature = rustSignature(n, src)
	res.Symbols = append(res.Symbols, sym)
}

// scanImpl records every fn in an impl block as a method scoped to the
// implemented type.
func (e *rustExtractor) scanImpl(n *sitter.Node, src []byte, res *Result) {
	scope := text(childByField(n, "type"), src)
	if i := strings.IndexByte(scope, '<'); i > 0 {
		scope = scope[:i]
	}
	body := childByField(n, "body")
	for _, fn := range childrenByType(body, "function_item") {
		e.addFn(fn, scope, KindMethod, src, res)
	}
	for _, c := range childrenByType(body, "const_item") {
		name := text(childByField(c, "name"), src)
		if name == "" {
			continue
		}
		sym := newSymbol(c, name, KindConst)
		sym.Scope = scope
		sym.Exported = rustPub(c, src)
		res.Symbols = append(res.Symbols, sym)
	}
}

// scanTraitBody records required and provided trait methods.
func (e *rustExtractor) scanTraitBody(n *sitter.Node, scope string, src []byte, res *Result) {
	body := childByField(n, "body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		c := body.Child(i)
		if c.Type() == "function_item" || c.Type() == "function_signature_item" {
			e.addFn(c, scope, KindMethod, src, res)
		}
	}
}

// collectUse flattens a use tree into imports. Grouped lists emit one
// import per leaf; wildcards become namespace imports.
func (e *rustExtractor) collectUse(arg, stmt *sitter.Node, src []byte, res *Result) {
	if arg == nil {
		return
	}
	switch arg.Type() {
	case "use_as_clause":
		path := text(childByField(arg, "path"), src)
		imp := newImport(stmt, lastSegment(path), path)
		imp.LocalName = text(childByField(arg, "alias"), src)
		res.Imports = append(res.Imports, imp)

	case "use_wildcard":
		path := strings.TrimSuffix(text(arg, src), "::*")
		imp := newImport(stmt, "*", path)
		imp.IsNamespace = true
		res.Imports = append(res.Imports, imp)

	case "scoped_use_list":
		prefix := text(childByField(arg, "path"), src)
		list := childByField(arg, "list")
		if list == nil {
			return
		}
		for i := 0; i < int(list.ChildCount()); i++ {
			c := list.Child(i)
			switch c.Type() {
			case "identifier", "scoped_identifier", "self":
				leaf := text(c, src)
				imp := newImport(stmt, lastSegment(leaf), prefix+"::"+leaf)
				res.Imports = append(res.Imports, imp)
			case "use_as_clause":
				leaf := text(childByField(c, "path"), src)
				imp := newImport(stmt, lastSegment(leaf), prefix+"::"+leaf)
				imp.LocalName = text(childByField(c, "alias"), src)
				res.Imports = append(res.Imports, imp)
			case "use_wildcard":
				imp := newImport(stmt, "*", prefix)
				imp.IsNamespace = true
				res.Imports = append(res.Imports, imp)
			}
		}

	default: // identifier, scoped_identifier, crate paths
		path := text(arg, src)
		if path == "" {
			return
		}
		res.Imports = append(res.Imports, newImport(stmt, lastSegment(path), path))
	}
}

// rustPub reports whether an item carries an unrestricted pub modifier.
func rustPub(n *sitter.Node, src []byte) bool {
	mod := childByType(n, "visibility_modifier")
	if mod == nil {
		return false
	}
	m := text(mod, src)
	return m == "pub"
}

func rustSignature(n *sitter.Node, src []byte) string {
	sig := text(childByField(n, "parameters"), src)
	if ret := text(childByField(n, "return_type"), src); ret != "" {
		sig += " -> " + ret
	}
	return sig
}
