package extract

import (
	"testing"

	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cppSample = `#include <vector>
#include "util.h"

using std::vector;
using namespace std;

namespace net {

enum Mode { Fast, Safe };

using Buffer = vector<char>;

class Socket {
    int fd;
public:
    void close();
private:
    void reset();
};

struct Packet {
    int size;
};

void Socket::close() {}

static int helper() { return 0; }

}
`

func TestCppExtract(t *testing.T) {
	root := parseTree(t, cpp.GetLanguage(), cppSample)
	res := NewCpp().Extract(root, []byte(cppSample))
	require.Empty(t, res.Errors)

	requireSymbol(t, res, "net", KindNamespace)
	requireSymbol(t, res, "Mode", KindType)
	requireSymbol(t, res, "Buffer", KindType)
	requireSymbol(t, res, "Socket", KindClass)

	// class members default to private until an access specifier flips it.
	fd := requireSymbol(t, res, "fd", KindProperty)
	assert.Equal(t, "Socket", fd.Scope)
	assert.False(t, fd.Exported)

	closeM := requireSymbol(t, res, "close", KindMethod)
	assert.Equal(t, "Socket", closeM.Scope)
	assert.True(t, closeM.Exported)

	reset := requireSymbol(t, res, "reset", KindMethod)
	assert.False(t, reset.Exported)

	// struct members default to public.
	size := requireSymbol(t, res, "size", KindProperty)
	assert.Equal(t, "Packet", size.Scope)
	assert.True(t, size.Exported)

	helper := requireSymbol(t, res, "helper", KindFunction)
	assert.False(t, helper.Exported, "static linkage is file-local")
}

func TestCppOutOfLineMethodDefinition(t *testing.T) {
	root := parseTree(t, cpp.GetLanguage(), cppSample)
	res := NewCpp().Extract(root, []byte(cppSample))

	var defs []*Symbol
	for _, s := range res.Symbols {
		if s.Name == "close" && s.Kind == KindMethod {
			defs = append(defs, s)
		}
	}
	// One from the in-class prototype, one from the qualified definition.
	require.Len(t, defs, 2)
	assert.Equal(t, "Socket", defs[1].Scope)
}

func TestCppImports(t *testing.T) {
	root := parseTree(t, cpp.GetLanguage(), cppSample)
	res := NewCpp().Extract(root, []byte(cppSample))

	for _, path := range []string{"vector", "util.h"} {
		imp := findImport(res, path)
		require.NotNil(t, imp, "include %q", path)
		assert.Equal(t, "_", imp.Name)
	}

	using := findImport(res, "std::vector")
	require.NotNil(t, using)
	assert.Equal(t, "vector", using.Name)
	assert.False(t, using.IsNamespace)

	ns := findImport(res, "std")
	require.NotNil(t, ns)
	assert.True(t, ns.IsNamespace)
}
