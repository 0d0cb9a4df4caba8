package lang

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/internal/extract"
)

func TestResolve(t *testing.T) {
	cfg, err := Resolve("internal/server/handler.go")
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Name)

	cfg, err = Resolve("src/App.TSX")
	require.NoError(t, err)
	assert.Equal(t, "tsx", cfg.Name, "extension matching is case-insensitive")

	_, err = Resolve("README.md")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Resolve("Makefile")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("main.go"))
	assert.True(t, Supported("lib/utils.rb"))
	assert.False(t, Supported("notes.txt"))
}

func TestCacheParse(t *testing.T) {
	cache, err := NewCache(0, nil)
	require.NoError(t, err)
	defer cache.Close()

	res, err := cache.Parse(context.Background(), "main.go", []byte("package main\n\nfunc main() {}\n"))
	require.NoError(t, err)
	require.Len(t, res.Symbols, 1)
	assert.Equal(t, "main", res.Symbols[0].Name)

	_, err = cache.Parse(context.Background(), "notes.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCacheReusesEngines(t *testing.T) {
	cache, err := NewCache(4, nil)
	require.NoError(t, err)
	defer cache.Close()

	for i := 0; i < 3; i++ {
		_, err := cache.Parse(context.Background(), "a.go", []byte("package a\n"))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, cache.Len(), "same language reuses one engine")
}

func TestCacheEvictsLRU(t *testing.T) {
	cache, err := NewCache(2, nil)
	require.NoError(t, err)
	defer cache.Close()

	sources := map[string]string{
		"a.go": "package a\n",
		"b.py": "x = 1\n",
		"c.rb": "y = 2\n",
	}
	for _, path := range []string{"a.go", "b.py", "c.rb"} {
		_, err := cache.Parse(context.Background(), path, []byte(sources[path]))
		require.NoError(t, err)
	}

	assert.Equal(t, 2, cache.Len(), "cache holds at most its capacity")

	// The evicted grammar is rebuilt transparently on next use.
	_, err = cache.Parse(context.Background(), "a.go", []byte("package a\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestCacheQuarantinesBrokenGrammar(t *testing.T) {
	cache, err := NewCache(2, nil)
	require.NoError(t, err)
	defer cache.Close()

	attempts := 0
	broken := &Config{
		Name: "broken",
		Language: func() *sitter.Language {
			attempts++
			panic("grammar unavailable")
		},
		NewExtractor: extract.NewGo,
	}

	// Files of a broken language index with nothing extracted.
	res, err := cache.parse(context.Background(), broken, "a.brk", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, res.Symbols)
	assert.Empty(t, res.Imports)
	assert.Empty(t, res.Errors)

	// The grammar is not retried for later files.
	_, err = cache.parse(context.Background(), broken, "b.brk", []byte("y"))
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	// Healthy languages are unaffected.
	res, err = cache.Parse(context.Background(), "main.go", []byte("package main\n\nfunc main() {}\n"))
	require.NoError(t, err)
	assert.Len(t, res.Symbols, 1)
}
