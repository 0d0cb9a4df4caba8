package extract

import (
	"testing"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSample = `package cache

import (
	"fmt"
	"sync"

	_ "net/http/pprof"
	. "math"
	lru "github.com/hashicorp/golang-lru/v2"
)

const MaxEntries = 128

var (
	defaultTTL, maxTTL = 60, 3600
)

type Cache struct {
	mu sync.Mutex
}

type Backend interface {
	Get(key string) (string, bool)
}

type Key = string

func NewCache() *Cache { return &Cache{} }

func (c *Cache) Get(key string) (string, bool) {
	return "", false
}

func (c *Cache) purge() {}

func helper() { fmt.Println(Pi) }
`

func TestGoExtractSymbols(t *testing.T) {
	root := parseTree(t, golang.GetLanguage(), goSample)
	res := NewGo().Extract(root, []byte(goSample))
	require.Empty(t, res.Errors)

	c := requireSymbol(t, res, "MaxEntries", KindConst)
	assert.True(t, c.Exported)

	v := requireSymbol(t, res, "defaultTTL", KindVariable)
	assert.False(t, v.Exported)
	requireSymbol(t, res, "maxTTL", KindVariable)

	cls := requireSymbol(t, res, "Cache", KindClass)
	assert.True(t, cls.Exported)
	requireSymbol(t, res, "Backend", KindInterface)

	fn := requireSymbol(t, res, "NewCache", KindFunction)
	assert.True(t, fn.Exported)
	assert.Equal(t, "() *Cache", fn.Signature)

	get := requireSymbol(t, res, "Get", KindMethod)
	assert.Equal(t, "Cache", get.Scope)
	assert.True(t, get.Exported)

	purge := requireSymbol(t, res, "purge", KindMethod)
	assert.False(t, purge.Exported)

	h := requireSymbol(t, res, "helper", KindFunction)
	assert.False(t, h.Exported)
	assert.Greater(t, h.StartLine, 1)
	assert.GreaterOrEqual(t, h.EndLine, h.StartLine)
}

func TestGoExtractImports(t *testing.T) {
	root := parseTree(t, golang.GetLanguage(), goSample)
	res := NewGo().Extract(root, []byte(goSample))

	plain := findImport(res, "fmt")
	require.NotNil(t, plain)
	assert.Equal(t, "fmt", plain.Name)
	assert.Empty(t, plain.LocalName)

	blank := findImport(res, "net/http/pprof")
	require.NotNil(t, blank)
	assert.Equal(t, "_", blank.Name)

	dot := findImport(res, "math")
	require.NotNil(t, dot)
	assert.Equal(t, "*", dot.Name)
	assert.False(t, dot.IsNamespace)

	aliased := findImport(res, "github.com/hashicorp/golang-lru/v2")
	require.NotNil(t, aliased)
	assert.Equal(t, "lru", aliased.Name)
	assert.Equal(t, "lru", aliased.LocalName)
}

func TestGoPartialExtraction(t *testing.T) {
	src := "package x\n\nfunc ok() {}\n\nfunc broken( {\n"
	root := parseTree(t, golang.GetLanguage(), src)
	res := NewGo().Extract(root, []byte(src))

	require.NotNil(t, findSymbol(res, "ok"))
	require.NotEmpty(t, res.Errors)
}

func TestGoGenericReceiver(t *testing.T) {
	src := "package x\n\ntype Pool[T any] struct{}\n\nfunc (p *Pool[T]) Take() T { var z T; return z }\n"
	root := parseTree(t, golang.GetLanguage(), src)
	res := NewGo().Extract(root, []byte(src))

	take := requireSymbol(t, res, "Take", KindMethod)
	assert.Equal(t, "Pool", take.Scope)
}
