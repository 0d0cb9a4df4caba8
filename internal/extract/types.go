// Package extract turns concrete syntax trees into declared symbols and
// import relationships. One extractor exists per supported language; all of
// them share the tree-walking helpers in helpers.go and converge on the
// Result contract below.
package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind represents the kind of a declared symbol.
type Kind string

const (
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindType      Kind = "type"
	KindConst     Kind = "const"
	KindVariable  Kind = "variable"
	KindProperty  Kind = "property"
	KindNamespace Kind = "namespace"
)

// Symbol is a named declaration extracted from a single file.
// Symbols carry no cross-file references; resolution is a query-time
// concern of downstream consumers.
type Symbol struct {
	Name      string
	Kind      Kind
	StartLine int // 1-indexed
	EndLine   int // inclusive
	Exported  bool
	Scope     string // enclosing type/module name, empty for top-level
	Signature string // raw parameter/result list text, empty if n/a
}

// Import is a reference from the extracted file to an external module path.
// Name is the imported identifier, "*" for namespace/wildcard imports and
// "_" for side-effect-only imports. Path is the module specifier exactly as
// written in source, unresolved.
type Import struct {
	Name        string
	Path        string
	Line        int
	LocalName   string // alias, empty when none
	IsNamespace bool
}

// Result is the extractor output for one file. Errors signals partial
// success: a syntax error in one region does not discard symbols extracted
// elsewhere in the same file.
type Result struct {
	Symbols []*Symbol
	Imports []*Import
	Errors  []string
}

// Extractor is the uniform extraction contract every language implements.
// Implementations must never panic on malformed input; recoverable parse
// imperfections are reported via Result.Errors.
type Extractor interface {
	Extract(root *sitter.Node, src []byte) *Result
}
