package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// bashExtractor maps tree-sitter-bash node kinds to symbols and imports.
// Shell has no visibility model, so every declaration is exported.
type bashExtractor struct{}

// NewBash returns the extractor for shell scripts.
func NewBash() Extractor { return &bashExtractor{} }

func (e *bashExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition":
			name := text(childByField(n, "name"), src)
			if name == "" {
				return false
			}
			sym := newSymbol(n, name, KindFunction)
			sym.Exported = true
			res.Symbols = append(res.Symbols, sym)
			return true // sourced files inside functions still count

		case "variable_assignment":
			e.collectAssignment(n, src, res)
			return false

		case "declaration_command":
			// declare/readonly/export with embedded assignments.
			for _, a := range childrenByType(n, "variable_assignment") {
				e.collectAssignment(a, src, res)
			}
			return false

		case "command":
			e.collectSource(n, src, res)
			return false
		}
		return true
	})

	return finishResult(root, res)
}

// collectAssignment records script-level variables. Assignments inside
// functions are locals and skipped.
func (e *bashExtractor) collectAssignment(n *sitter.Node, src []byte, res *Result) {
	if nearestAncestor(n, "function_definition") != nil {
		return
	}
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	kind := KindVariable
	if isScreamingCase(name) {
		kind = KindConst
	}
	sym := newSymbol(n, name, kind)
	sym.Exported = true
	res.Symbols = append(res.Symbols, sym)
}

// collectSource records `source file` and `. file` commands as side-effect
// imports when the target is a literal.
func (e *bashExtractor) collectSource(n *sitter.Node, src []byte, res *Result) {
	cmd := text(childByField(n, "name"), src)
	if cmd != "source" && cmd != "." {
		return
	}
	arg := childByType(n, "word", "string", "raw_string", "concatenation")
	if arg == nil {
		return
	}
	path := unquote(text(arg, src))
	if path == "" || path == cmd {
		return
	}
	res.Imports = append(res.Imports, newImport(n, "_", path))
}
