package extract

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"
)

// parseTree parses src with the given grammar and returns the root node.
func parseTree(t *testing.T, language *sitter.Language, src string) *sitter.Node {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(language)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	t.Cleanup(func() {
		tree.Close()
		parser.Close()
	})
	return tree.RootNode()
}

// findSymbol returns the first symbol with the given name, or nil.
func findSymbol(res *Result, name string) *Symbol {
	for _, s := range res.Symbols {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// findImport returns the first import with the given path, or nil.
func findImport(res *Result, path string) *Import {
	for _, i := range res.Imports {
		if i.Path == path {
			return i
		}
	}
	return nil
}

func requireSymbol(t *testing.T, res *Result, name string, kind Kind) *Symbol {
	t.Helper()
	sym := findSymbol(res, name)
	require.NotNil(t, sym, "symbol %q not extracted", name)
	require.Equal(t, kind, sym.Kind, "symbol %q kind", name)
	return sym
}
