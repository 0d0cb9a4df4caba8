package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// javaExtractor maps tree-sitter-java node kinds to symbols and imports.
// Exported means carrying the explicit public modifier.
type javaExtractor struct{}

// NewJava returns the extractor for Java source files.
func NewJava() Extractor { return &javaExtractor{} }

var javaContainerTypes = []string{
	"class_declaration", "interface_declaration", "enum_declaration", "record_declaration",
}

func (e *javaExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "package_declaration":
			if pkg := childByType(n, "scoped_identifier", "identifier"); pkg != nil {
				sym := newSymbol(n, text(pkg, src), KindNamespace)
				sym.Exported = true
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "class_declaration", "record_declaration":
			e.addContainer(n, KindClass, src, res)
			return true

		case "interface_declaration":
			e.addContainer(n, KindInterface, src, res)
			return true

		case "enum_declaration":
			e.addContainer(n, KindType, src, res)
			return true

		case "method_declaration", "constructor_declaration":
			name := text(childByField(n, "name"), src)
			if name == "" {
				return false
			}
			sym := newSymbol(n, name, KindMethod)
			sym.Scope = javaScope(n, src)
			sym.Exported = javaPublic(n, src)
			sym.Signature = text(childByField(n, "parameters"), src)
			res.Symbols = append(res.Symbols, sym)
			return false

		case "field_declaration":
			e.collectField(n, src, res)
			return false

		case "import_declaration":
			e.collectImport(n, src, res)
			return false
		}
		return true
	})

	return finishResult(root, res)
}

func (e *javaExtractor) addContainer(n *sitter.Node, kind Kind, src []byte, res *Result) {
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, kind)
	sym.Scope = javaScope(n, src)
	sym.Exported = javaPublic(n, src)
	res.Symbols = append(res.Symbols, sym)
}

// collectField records class fields; static final fields count as
// constants.
func (e *javaExtractor) collectField(n *sitter.Node, src []byte, res *Result) {
	kind := KindVariable
	mods := text(childByType(n, "modifiers"), src)
	if strings.Contains(mods, "static") && strings.Contains(mods, "final") {
		kind = KindConst
	}
	for _, decl := range childrenByType(n, "variable_declarator") {
		name := text(childByField(decl, "name"), src)
		if name == "" {
			continue
		}
		sym := newSymbol(n, name, kind)
		sym.Scope = javaScope(n, src)
		sym.Exported = javaPublic(n, src)
		res.Symbols = append(res.Symbols, sym)
	}
}

// collectImport handles "import a.b.C;", "import a.b.*;" and static
// imports.
func (e *javaExtractor) collectImport(n *sitter.Node, src []byte, res *Result) {
	target := childByType(n, "scoped_identifier", "identifier")
	if target == nil {
		return
	}
	path := text(target, src)

	if childByType(n, "asterisk") != nil {
		imp := newImport(n, "*", path)
		imp.IsNamespace = true
		res.Imports = append(res.Imports, imp)
		return
	}
	res.Imports = append(res.Imports, newImport(n, lastSegment(path), path))
}

// javaScope names the enclosing container for nested declarations.
func javaScope(n *sitter.Node, src []byte) string {
	enc := nearestAncestor(n, javaContainerTypes...)
	return text(childByField(enc, "name"), src)
}

func javaPublic(n *sitter.Node, src []byte) bool {
	mods := childByType(n, "modifiers")
	if mods == nil {
		return false
	}
	return strings.Contains(text(mods, src), "public")
}
