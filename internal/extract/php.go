package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// phpExtractor maps tree-sitter-php node kinds to symbols and imports.
// Class members default to public; an explicit visibility modifier
// overrides that.
type phpExtractor struct{}

// NewPHP returns the extractor for PHP source files.
func NewPHP() Extractor { return &phpExtractor{} }

var phpContainerTypes = []string{
	"class_declaration", "interface_declaration", "trait_declaration", "enum_declaration",
}

func (e *phpExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "namespace_definition":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindNamespace)
				sym.Exported = true
				res.Symbols = append(res.Symbols, sym)
			}
			return true

		case "function_definition":
			name := text(childByField(n, "name"), src)
			if name == "" {
				return false
			}
			sym := newSymbol(n, name, KindFunction)
			sym.Exported = true
			sym.Signature = text(childByField(n, "parameters"), src)
			res.Symbols = append(res.Symbols, sym)
			return false

		case "class_declaration", "trait_declaration":
			e.addContainer(n, KindClass, src, res)
			return true

		case "interface_declaration":
			e.addContainer(n, KindInterface, src, res)
			return true

		case "enum_declaration":
			e.addContainer(n, KindType, src, res)
			return false

		case "method_declaration":
			name := text(childByField(n, "name"), src)
			if name == "" {
				return false
			}
			sym := newSymbol(n, name, KindMethod)
			sym.Scope = phpScope(n, src)
			sym.Exported = phpVisible(n, src)
			sym.Signature = text(childByField(n, "parameters"), src)
			res.Symbols = append(res.Symbols, sym)
			return false

		case "property_declaration":
			e.collectProperty(n, src, res)
			return false

		case "const_declaration":
			e.collectConst(n, src, res)
			return false

		case "namespace_use_declaration":
			e.collectUse(n, src, res)
			return false

		case "require_expression", "require_once_expression",
			"include_expression", "include_once_expression":
			e.collectInclude(n, src, res)
			return false
		}
		return true
	})

	return finishResult(root, res)
}

func (e *phpExtractor) addContainer(n *sitter.Node, kind Kind, src []byte, res *Result) {
	name := text(childByField(n, "name"), src)
	if name == "" {
		return
	}
	sym := newSymbol(n, name, kind)
	sym.Scope = phpScope(n, src)
	sym.Exported = true
	res.Symbols = append(res.Symbols, sym)
}

func (e *phpExtractor) collectProperty(n *sitter.Node, src []byte, res *Result) {
	for _, el := range childrenByType(n, "property_element") {
		name := text(childByType(el, "variable_name"), src)
		if name == "" {
			continue
		}
		sym := newSymbol(n, name, KindProperty)
		sym.Scope = phpScope(n, src)
		sym.Exported = phpVisible(n, src)
		res.Symbols = append(res.Symbols, sym)
	}
}

// collectConst handles both class constants and top-level const
// declarations.
func (e *phpExtractor) collectConst(n *sitter.Node, src []byte, res *Result) {
	for _, el := range childrenByType(n, "const_element") {
		name := text(childByType(el, "name"), src)
		if name == "" {
			continue
		}
		sym := newSymbol(n, name, KindConst)
		sym.Scope = phpScope(n, src)
		sym.Exported = phpVisible(n, src)
		res.Symbols = append(res.Symbols, sym)
	}
}

// collectUse flattens `use A\B\C;` and aliased/grouped forms into imports.
func (e *phpExtractor) collectUse(n *sitter.Node, src []byte, res *Result) {
	for _, clause := range childrenByType(n, "namespace_use_clause") {
		target := childByType(clause, "qualified_name", "name")
		if target == nil {
			continue
		}
		path := text(target, src)
		imp := newImport(n, phpLastSegment(path), path)
		if alias := childByType(clause, "namespace_aliasing_clause"); alias != nil {
			imp.LocalName = text(childByType(alias, "name"), src)
		}
		res.Imports = append(res.Imports, imp)
	}
}

// collectInclude records require/include expressions with a literal path as
// side-effect imports.
func (e *phpExtractor) collectInclude(n *sitter.Node, src []byte, res *Result) {
	str := childByType(n, "string", "encapsed_string")
	if str == nil {
		return
	}
	path := unquote(text(str, src))
	if path == "" {
		return
	}
	res.Imports = append(res.Imports, newImport(n, "_", path))
}

// phpScope names the enclosing class/interface/trait for member
// declarations.
func phpScope(n *sitter.Node, src []byte) string {
	enc := nearestAncestor(n, phpContainerTypes...)
	return text(childByField(enc, "name"), src)
}

// phpVisible reports effective member visibility: public unless an explicit
// private/protected modifier says otherwise.
func phpVisible(n *sitter.Node, src []byte) bool {
	mod := childByType(n, "visibility_modifier")
	if mod == nil {
		return true
	}
	return text(mod, src) == "public"
}

// phpLastSegment returns the final component of a backslash-separated
// namespace path.
func phpLastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
