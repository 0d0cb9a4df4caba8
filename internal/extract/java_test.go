package extract

import (
	"testing"

	"github.com/smacker/go-tree-sitter/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const javaSample = `package com.example.app;

import java.util.List;
import java.util.concurrent.*;
import static java.lang.Math.max;

public class Server {
    public static final int MAX_CONNS = 64;
    private String host;

    public Server(String host) { this.host = host; }

    public void start() {}

    void stop() {}
}

interface Handler {
    void handle();
}
`

func TestJavaExtract(t *testing.T) {
	root := parseTree(t, java.GetLanguage(), javaSample)
	res := NewJava().Extract(root, []byte(javaSample))
	require.Empty(t, res.Errors)

	pkg := requireSymbol(t, res, "com.example.app", KindNamespace)
	assert.True(t, pkg.Exported)

	server := requireSymbol(t, res, "Server", KindClass)
	assert.True(t, server.Exported)

	maxConns := requireSymbol(t, res, "MAX_CONNS", KindConst)
	assert.Equal(t, "Server", maxConns.Scope)
	assert.True(t, maxConns.Exported)

	host := requireSymbol(t, res, "host", KindVariable)
	assert.False(t, host.Exported)

	start := requireSymbol(t, res, "start", KindMethod)
	assert.Equal(t, "Server", start.Scope)
	assert.True(t, start.Exported)
	assert.Equal(t, "()", start.Signature)

	stop := requireSymbol(t, res, "stop", KindMethod)
	assert.False(t, stop.Exported, "package-private is not exported")

	handler := requireSymbol(t, res, "Handler", KindInterface)
	assert.False(t, handler.Exported)
}

func TestJavaImports(t *testing.T) {
	root := parseTree(t, java.GetLanguage(), javaSample)
	res := NewJava().Extract(root, []byte(javaSample))

	list := findImport(res, "java.util.List")
	require.NotNil(t, list)
	assert.Equal(t, "List", list.Name)
	assert.False(t, list.IsNamespace)

	wildcard := findImport(res, "java.util.concurrent")
	require.NotNil(t, wildcard)
	assert.Equal(t, "*", wildcard.Name)
	assert.True(t, wildcard.IsNamespace)

	static := findImport(res, "java.lang.Math.max")
	require.NotNil(t, static)
	assert.Equal(t, "max", static.Name)
}
