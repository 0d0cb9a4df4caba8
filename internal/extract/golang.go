package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// goExtractor maps tree-sitter-go node kinds to symbols and imports.
// Export detection follows the capitalization convention.
type goExtractor struct{}

// NewGo returns the extractor for Go source files.
func NewGo() Extractor { return &goExtractor{} }

func (e *goExtractor) Extract(root *sitter.Node, src []byte) *Result {
	res := &Result{}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_declaration":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindFunction)
				sym.Exported = isCapitalized(name)
				sym.Signature = goSignature(n, src)
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "method_declaration":
			if name := text(childByField(n, "name"), src); name != "" {
				sym := newSymbol(n, name, KindMethod)
				sym.Exported = isCapitalized(name)
				sym.Scope = goReceiverType(childByField(n, "receiver"), src)
				sym.Signature = goSignature(n, src)
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "type_declaration":
			for _, spec := range childrenByType(n, "type_spec") {
				name := text(childByField(spec, "name"), src)
				if name == "" {
					continue
				}
				sym := newSymbol(spec, name, goTypeKind(childByField(spec, "type")))
				sym.Exported = isCapitalized(name)
				res.Symbols = append(res.Symbols, sym)
			}
			// type_alias lives directly under type_declaration in older
			// grammar revisions; treat it the same way.
			for _, alias := range childrenByType(n, "type_alias") {
				name := text(childByField(alias, "name"), src)
				if name == "" {
					continue
				}
				sym := newSymbol(alias, name, KindType)
				sym.Exported = isCapitalized(name)
				res.Symbols = append(res.Symbols, sym)
			}
			return false

		case "const_declaration":
			e.collectSpecs(n, "const_spec", KindConst, src, res)
			return false

		case "var_declaration":
			e.collectSpecs(n, "var_spec", KindVariable, src, res)
			return false

		case "import_declaration":
			e.collectImports(n, src, res)
			return false
		}
		return true
	})

	return finishResult(root, res)
}

// collectSpecs handles const/var declarations, which may bind several names
// in one spec (const A, B = 1, 2) and several specs in one declaration.
func (e *goExtractor) collectSpecs(n *sitter.Node, specType string, kind Kind, src []byte, res *Result) {
	for _, spec := range childrenByType(n, specType) {
		for _, id := range childrenByType(spec, "identifier") {
			name := text(id, src)
			if name == "" {
				continue
			}
			sym := newSymbol(spec, name, kind)
			sym.Exported = isCapitalized(name)
			res.Symbols = append(res.Symbols, sym)
		}
	}
}

func (e *goExtractor) collectImports(n *sitter.Node, src []byte, res *Result) {
	specs := childrenByType(n, "import_spec")
	if list := childByType(n, "import_spec_list"); list != nil {
		specs = append(specs, childrenByType(list, "import_spec")...)
	}

	for _, spec := range specs {
		path := unquote(text(childByField(spec, "path"), src))
		if path == "" {
			continue
		}

		imp := newImport(spec, lastSegment(strings.ReplaceAll(path, "/", ".")), path)
		if nameNode := childByField(spec, "name"); nameNode != nil {
			switch nameNode.Type() {
			case "dot":
				// Dot imports merge the package into the file scope; the
				// imported identifier is recorded as "*" but this is not a
				// namespace binding.
				imp.Name = "*"
			case "blank_identifier":
				imp.Name = "_"
			default:
				imp.Name = text(nameNode, src)
				imp.LocalName = text(nameNode, src)
			}
		}
		res.Imports = append(res.Imports, imp)
	}
}

// goTypeKind maps the underlying type shape of a type spec to a symbol kind:
// struct -> class, interface -> interface, anything else -> type.
func goTypeKind(typeNode *sitter.Node) Kind {
	if typeNode == nil {
		return KindType
	}
	switch typeNode.Type() {
	case "struct_type":
		return KindClass
	case "interface_type":
		return KindInterface
	default:
		return KindType
	}
}

// goReceiverType extracts the bare receiver type name from a method's
// receiver parameter list, stripping the pointer marker.
func goReceiverType(receiver *sitter.Node, src []byte) string {
	decl := childByType(receiver, "parameter_declaration")
	if decl == nil {
		return ""
	}
	typ := text(childByField(decl, "type"), src)
	typ = strings.TrimPrefix(typ, "*")
	// Drop generic type parameters: "Cache[K, V]" -> "Cache".
	if i := strings.IndexByte(typ, '['); i > 0 {
		typ = typ[:i]
	}
	return typ
}

// goSignature joins the parameter list and result, when present.
func goSignature(n *sitter.Node, src []byte) string {
	sig := text(childByField(n, "parameters"), src)
	if result := text(childByField(n, "result"), src); result != "" {
		sig += " " + result
	}
	return sig
}
