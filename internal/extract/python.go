package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// pythonExtractor maps tree-sitter-python node kinds to symbols and imports.
// Visibility follows the leading-underscore convention.
type pythonExtractor struct{}

// NewPython returns the extractor for Python source files.
func NewPython() Extractor { return &pythonExtractor{} }

func (e *pythonExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition":
			name := text(childByField(n, "name"), src)
			if name == "" {
				return false
			}
			sym := newSymbol(n, name, KindFunction)
			if cls := enclosingPythonClass(n); cls != nil {
				sym.Kind = KindMethod
				sym.Scope = text(childByField(cls, "name"), src)
			}
			sym.Exported = pythonVisible(name)
			sym.Signature = text(childByField(n, "parameters"), src)
			res.Symbols = append(res.Symbols, sym)
			return true // descend: nested defs and methods

		case "class_definition":
			name := text(childByField(n, "name"), src)
			if name == "" {
				return false
			}
			sym := newSymbol(n, name, KindClass)
			sym.Exported = pythonVisible(name)
			res.Symbols = append(res.Symbols, sym)
			return true

		case "assignment":
			e.collectAssignment(n, src, res)
			return false

		case "import_statement":
			e.collectImport(n, src, res)
			return false

		case "import_from_statement":
			e.collectFromImport(n, src, res)
			return false
		}
		return true
	})

	return finishResult(root, res)
}

// collectAssignment records module-level bindings. ALL_CAPS names are
// conventionally constants.
func (e *pythonExtractor) collectAssignment(n *sitter.Node, src []byte, res *Result) {
	if nearestAncestor(n, "function_definition", "class_definition") != nil {
		return
	}

	left := childByField(n, "left")
	if left == nil {
		return
	}

	var names []string
	switch left.Type() {
	case "identifier":
		names = append(names, text(left, src))
	case "pattern_list", "tuple_pattern":
		for _, id := range childrenByType(left, "identifier") {
			names = append(names, text(id, src))
		}
	default:
		return // attribute/subscript targets are not declarations
	}

	for _, name := range names {
		kind := KindVariable
		if isScreamingCase(name) {
			kind = KindConst
		}
		sym := newSymbol(n, name, kind)
		sym.Exported = pythonVisible(name)
		res.Symbols = append(res.Symbols, sym)
	}
}

// collectImport handles "import a.b, c as d".
func (e *pythonExtractor) collectImport(n *sitter.Node, src []byte, res *Result) {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "dotted_name":
			path := text(c, src)
			imp := newImport(n, lastSegment(path), path)
			res.Imports = append(res.Imports, imp)
		case "aliased_import":
			path := text(childByField(c, "name"), src)
			imp := newImport(n, lastSegment(path), path)
			imp.LocalName = text(childByField(c, "alias"), src)
			res.Imports = append(res.Imports, imp)
		}
	}
}

// collectFromImport handles "from x import a, b as c" and
// "from x import *".
func (e *pythonExtractor) collectFromImport(n *sitter.Node, src []byte, res *Result) {
	module := childByField(n, "module_name")
	path := text(module, src)
	if path == "" {
		return
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if module != nil && c.StartByte() == module.StartByte() {
			continue // skip the module path itself
		}
		switch c.Type() {
		case "dotted_name":
			imp := newImport(n, text(c, src), path)
			res.Imports = append(res.Imports, imp)
		case "aliased_import":
			imp := newImport(n, text(childByField(c, "name"), src), path)
			imp.LocalName = text(childByField(c, "alias"), src)
			res.Imports = append(res.Imports, imp)
		case "wildcard_import":
			imp := newImport(n, "*", path)
			imp.IsNamespace = true
			res.Imports = append(res.Imports, imp)
		}
	}
}

// enclosingPythonClass returns the class a def belongs to, or nil for
// plain functions. A def nested inside another def is not a method even
// when the outer def sits in a class.
func enclosingPythonClass(n *sitter.Node) *sitter.Node {
	enc := nearestAncestor(n, "function_definition", "class_definition")
	if enc != nil && enc.Type() == "class_definition" {
		return enc
	}
	return nil
}

func pythonVisible(name string) bool {
	// Dunder names are part of the public protocol surface.
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return true
	}
	return !strings.HasPrefix(name, "_")
}
