package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// rubyExtractor maps tree-sitter-ruby node kinds to symbols and imports.
// Method visibility is stateful in Ruby: a bare `private` / `public` /
// `protected` call flips the visibility of every method that follows it in
// the class body, so class bodies are scanned in source order.
type rubyExtractor struct{}

// NewRuby returns the extractor for Ruby source files.
func NewRuby() Extractor { return &rubyExtractor{} }

func (e *rubyExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "class":
			name := text(childByField(n, "name"), src)
			if name != "" {
				res.Symbols = append(res.Symbols, e.container(n, name, KindClass))
			}
			e.scanBody(n, name, src, res)
			return false

		case "module":
			name := text(childByField(n, "name"), src)
			if name != "" {
				res.Symbols = append(res.Symbols, e.container(n, name, KindNamespace))
			}
			e.scanBody(n, name, src, res)
			return false

		case "method", "singleton_method":
			// Top-level def: a plain function, public by definition.
			e.addMethod(n, "", true, KindFunction, src, res)
			return false

		case "assignment":
			e.collectConstant(n, "", src, res)
			return false

		case "call":
			e.collectRequire(n, src, res)
			return true
		}
		return true
	})

	return finishResult(root, res)
}

func (e *rubyExtractor) container(n *sitter.Node, name string, kind Kind) *Symbol {
	sym := newSymbol(n, name, kind)
	sym.Exported = true
	return sym
}

// scanBody walks the direct children of a class/module body in source
// order, tracking the visibility state set by bare visibility calls.
func (e *rubyExtractor) scanBody(container *sitter.Node, scope string, src []byte, res *Result) {
	body := childByType(container, "body_statement")
	if body == nil {
		return
	}

	visible := true
	for i := 0; i < int(body.ChildCount()); i++ {
		c := body.Child(i)
		switch c.Type() {
		case "identifier":
			switch text(c, src) {
			case "private", "protected":
				visible = false
			case "public":
				visible = true
			}

		case "method":
			e.addMethod(c, scope, visible, KindMethod, src, res)

		case "singleton_method":
			// def self.x defines a class-level method; visibility modifiers
			// do not apply to the singleton class here.
			e.addMethod(c, scope, true, KindMethod, src, res)

		case "class", "module":
			name := text(childByField(c, "name"), src)
			kind := KindClass
			if c.Type() == "module" {
				kind = KindNamespace
			}
			if name != "" {
				sym := e.container(c, name, kind)
				sym.Scope = scope
				res.Symbols = append(res.Symbols, sym)
			}
			e.scanBody(c, name, src, res)

		case "assignment":
			e.collectConstant(c, scope, src, res)

		case "call":
			e.collectRequire(c, src, res)
		}
	}
}

func (e *rubyExtractor) addMethod(n *sitter.Node, scope string, visible bool, kind Kind, src []byte, res *Result) {
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, kind)
	sym.Scope = scope
	sym.Exported = visible
	sym.Signature = text(childByField(n, "parameters"), src)
	res.Symbols = append(res.Symbols, sym)
}

// collectConstant records CONSTANT = ... assignments.
func (e *rubyExtractor) collectConstant(n *sitter.Node, scope string, src []byte, res *Result) {
	left := childByField(n, "left")
	if left == nil || left.Type() != "constant" {
		return
	}
	sym := newSymbol(n, text(left, src), KindConst)
	sym.Scope = scope
	sym.Exported = true
	res.Symbols = append(res.Symbols, sym)
}

// collectRequire records require / require_relative calls as side-effect
// imports; Ruby requires bind no identifier.
func (e *rubyExtractor) collectRequire(n *sitter.Node, src []byte, res *Result) {
	method := text(childByField(n, "method"), src)
	if method != "require" && method != "require_relative" {
		return
	}
	args := childByField(n, "arguments")
	str := childByType(args, "string")
	if str == nil {
		return
	}
	path := unquote(text(str, src))
	if path == "" {
		return
	}
	res.Imports = append(res.Imports, newImport(n, "_", path))
}
