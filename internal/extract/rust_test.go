package extract

import (
	"testing"

	"github.com/smacker/go-tree-sitter/rust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rustSample = `use std::collections::HashMap;
use std::io::{Read, Write as IoWrite};
use serde::prelude::*;

pub const MAX_DEPTH: usize = 16;
static COUNTER: u32 = 0;

pub struct Parser {
    depth: usize,
}

pub trait Visitor {
    fn visit(&mut self, node: &str);
    fn done(&self) -> bool {
        true
    }
}

impl Parser<'_> {
    pub fn new() -> Self {
        Parser { depth: 0 }
    }

    fn descend(&mut self) {}
}

pub enum Token {
    Ident,
    Number,
}

pub type Result = std::result::Result<(), String>;

mod helpers {
    pub fn align(n: usize) -> usize {
        n
    }
}

pub fn parse(input: &str) -> Result {
    Ok(())
}
`

func TestRustExtractSymbols(t *testing.T) {
	root := parseTree(t, rust.GetLanguage(), rustSample)
	res := NewRust().Extract(root, []byte(rustSample))
	require.Empty(t, res.Errors)

	c := requireSymbol(t, res, "MAX_DEPTH", KindConst)
	assert.True(t, c.Exported)

	counter := requireSymbol(t, res, "COUNTER", KindVariable)
	assert.False(t, counter.Exported)

	requireSymbol(t, res, "Parser", KindClass)
	requireSymbol(t, res, "Token", KindType)
	requireSymbol(t, res, "Result", KindType)
	requireSymbol(t, res, "helpers", KindNamespace)

	trait := requireSymbol(t, res, "Visitor", KindInterface)
	assert.True(t, trait.Exported)

	visit := requireSymbol(t, res, "visit", KindMethod)
	assert.Equal(t, "Visitor", visit.Scope)
	done := requireSymbol(t, res, "done", KindMethod)
	assert.Equal(t, "Visitor", done.Scope)

	// impl methods are scoped to the type with generics stripped.
	newFn := requireSymbol(t, res, "new", KindMethod)
	assert.Equal(t, "Parser", newFn.Scope)
	assert.True(t, newFn.Exported)

	descend := requireSymbol(t, res, "descend", KindMethod)
	assert.False(t, descend.Exported)

	// fns inside an inline module are still reached.
	requireSymbol(t, res, "align", KindFunction)

	parse := requireSymbol(t, res, "parse", KindFunction)
	assert.True(t, parse.Exported)
	assert.Contains(t, parse.Signature, "-> Result")
}

func TestRustExtractUses(t *testing.T) {
	root := parseTree(t, rust.GetLanguage(), rustSample)
	res := NewRust().Extract(root, []byte(rustSample))

	plain := findImport(res, "std::collections::HashMap")
	require.NotNil(t, plain)
	assert.Equal(t, "HashMap", plain.Name)

	read := findImport(res, "std::io::Read")
	require.NotNil(t, read)
	assert.Equal(t, "Read", read.Name)

	write := findImport(res, "std::io::Write")
	require.NotNil(t, write)
	assert.Equal(t, "IoWrite", write.LocalName)

	wild := findImport(res, "serde::prelude")
	require.NotNil(t, wild)
	assert.Equal(t, "*", wild.Name)
	assert.True(t, wild.IsNamespace)
}
