package extract

import (
	"testing"

	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rubySample = `require "json"
require_relative "helpers"

VERSION = "1.2.0"

module Transport
  class Client
    TIMEOUT = 30

    def connect
      true
    end

    def self.default
      new
    end

    private

    def handshake
    end

    public

    def ping
    end
  end
end

def top_level
end
`

func TestRubyExtractSymbols(t *testing.T) {
	root := parseTree(t, ruby.GetLanguage(), rubySample)
	res := NewRuby().Extract(root, []byte(rubySample))
	require.Empty(t, res.Errors)

	requireSymbol(t, res, "VERSION", KindConst)
	requireSymbol(t, res, "Transport", KindNamespace)

	cls := requireSymbol(t, res, "Client", KindClass)
	assert.Equal(t, "Transport", cls.Scope)

	timeout := requireSymbol(t, res, "TIMEOUT", KindConst)
	assert.Equal(t, "Client", timeout.Scope)

	connect := requireSymbol(t, res, "connect", KindMethod)
	assert.Equal(t, "Client", connect.Scope)
	assert.True(t, connect.Exported)

	// Visibility is positional: handshake follows `private`, ping follows
	// the later `public`.
	handshake := requireSymbol(t, res, "handshake", KindMethod)
	assert.False(t, handshake.Exported)

	ping := requireSymbol(t, res, "ping", KindMethod)
	assert.True(t, ping.Exported)

	def := requireSymbol(t, res, "default", KindMethod)
	assert.True(t, def.Exported, "singleton methods ignore instance visibility")

	top := requireSymbol(t, res, "top_level", KindFunction)
	assert.True(t, top.Exported)
}

func TestRubyExtractRequires(t *testing.T) {
	root := parseTree(t, ruby.GetLanguage(), rubySample)
	res := NewRuby().Extract(root, []byte(rubySample))

	j := findImport(res, "json")
	require.NotNil(t, j)
	assert.Equal(t, "_", j.Name)

	rel := findImport(res, "helpers")
	require.NotNil(t, rel)
}
