package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// walk traverses the tree depth-first. fn returns whether to descend into
// the node's children.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

// childByField returns the child bound to a grammar field name, or nil.
func childByField(n *sitter.Node, field string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(field)
}

// childByType returns the first direct child whose node type matches any of
// the given types.
func childByType(n *sitter.Node, types ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// childrenByType returns all direct children of the given node type.
func childrenByType(n *sitter.Node, nodeType string) []*sitter.Node {
	var out []*sitter.Node
	if n == nil {
		return out
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == nodeType {
			out = append(out, c)
		}
	}
	return out
}

// nearestAncestor walks up the parent chain and returns the first ancestor
// whose type matches any of the given types, or nil. Used to recover the
// enclosing class/module scope of a declaration.
func nearestAncestor(n *sitter.Node, types ...string) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		for _, t := range types {
			if p.Type() == t {
				return p
			}
		}
	}
	return nil
}

// text slices the raw source for a node's span.
func text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start >= end || int(end) > len(src) {
		return ""
	}
	return string(src[start:end])
}

// line returns the 1-indexed start line of a node.
func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// endLine returns the 1-indexed end line of a node.
func endLine(n *sitter.Node) int {
	return int(n.EndPoint().Row) + 1
}

// newSymbol builds a Symbol stamped with the node's line span.
func newSymbol(n *sitter.Node, name string, kind Kind) *Symbol {
	return &Symbol{
		Name:      name,
		Kind:      kind,
		StartLine: line(n),
		EndLine:   endLine(n),
	}
}

// newImport builds an Import stamped with the node's start line.
func newImport(n *sitter.Node, name, path string) *Import {
	return &Import{
		Name: name,
		Path: path,
		Line: line(n),
	}
}

// unquote strips one layer of matching string delimiters, if present.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
		if first == '<' && last == '>' {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// isCapitalized reports whether the first rune is upper case. Go's export
// convention.
func isCapitalized(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// isScreamingCase reports whether a name follows the ALL_CAPS constant
// convention used by Python and Ruby module-level constants.
func isScreamingCase(name string) bool {
	hasLetter := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// lastSegment returns the final component of a dotted or double-colon
// separated path ("a.b.c" -> "c", "a::b::c" -> "c").
func lastSegment(path string) string {
	path = strings.TrimSuffix(path, ";")
	if i := strings.LastIndex(path, "::"); i >= 0 {
		return path[i+2:]
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// treeError is the diagnostic attached when the grammar reports a syntax
// error somewhere in the tree. Extraction is best-effort: symbols from
// well-formed regions are still returned alongside this entry.
const treeError = "syntax error in source; extraction is partial"

// finishResult normalizes a result: non-nil slices and a tree-level
// diagnostic when the root contains an error node.
func finishResult(root *sitter.Node, res *Result) *Result {
	if res.Symbols == nil {
		res.Symbols = []*Symbol{}
	}
	if res.Imports == nil {
		res.Imports = []*Import{}
	}
	if root != nil && root.HasError() {
		res.Errors = append(res.Errors, treeError)
	}
	return res
}
