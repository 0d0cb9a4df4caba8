// Package lang binds file extensions to tree-sitter grammars and symbol
// extractors, and owns the bounded cache of live parser instances.
package lang

import (
	"errors"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/codescope/codescope/internal/extract"
)

// ErrUnsupported is returned when no grammar is registered for a file's
// extension.
var ErrUnsupported = errors.New("unsupported language")

// Config describes one supported language: its name, the extensions it
// claims, and factories for the grammar and extractor. Grammar construction
// is deferred so that a broken grammar only costs the files that need it.
type Config struct {
	Name         string
	Extensions   []string
	Language     func() *sitter.Language
	NewExtractor func() extract.Extractor
}

// configs is the static language table. Extensions must be unique across
// entries; Register panics otherwise.
var configs = []*Config{
	{
		Name:         "go",
		Extensions:   []string{".go"},
		Language:     golang.GetLanguage,
		NewExtractor: extract.NewGo,
	},
	{
		Name:         "javascript",
		Extensions:   []string{".js", ".jsx", ".mjs", ".cjs"},
		Language:     javascript.GetLanguage,
		NewExtractor: extract.NewJavaScript,
	},
	{
		Name:         "typescript",
		Extensions:   []string{".ts", ".mts", ".cts"},
		Language:     typescript.GetLanguage,
		NewExtractor: extract.NewTypeScript,
	},
	{
		Name:         "tsx",
		Extensions:   []string{".tsx"},
		Language:     tsx.GetLanguage,
		NewExtractor: extract.NewTypeScript,
	},
	{
		Name:         "python",
		Extensions:   []string{".py", ".pyi"},
		Language:     python.GetLanguage,
		NewExtractor: extract.NewPython,
	},
	{
		Name:         "ruby",
		Extensions:   []string{".rb", ".rake"},
		Language:     ruby.GetLanguage,
		NewExtractor: extract.NewRuby,
	},
	{
		Name:         "rust",
		Extensions:   []string{".rs"},
		Language:     rust.GetLanguage,
		NewExtractor: extract.NewRust,
	},
	{
		Name:         "java",
		Extensions:   []string{".java"},
		Language:     java.GetLanguage,
		NewExtractor: extract.NewJava,
	},
	{
		Name:         "c",
		Extensions:   []string{".c", ".h"},
		Language:     c.GetLanguage,
		NewExtractor: extract.NewC,
	},
	{
		Name:         "cpp",
		Extensions:   []string{".cc", ".cpp", ".cxx", ".hpp", ".hh", ".hxx"},
		Language:     cpp.GetLanguage,
		NewExtractor: extract.NewCpp,
	},
	{
		Name:         "csharp",
		Extensions:   []string{".cs"},
		Language:     csharp.GetLanguage,
		NewExtractor: extract.NewCSharp,
	},
	{
		Name:         "php",
		Extensions:   []string{".php"},
		Language:     php.GetLanguage,
		NewExtractor: extract.NewPHP,
	},
	{
		Name:         "bash",
		Extensions:   []string{".sh", ".bash"},
		Language:     bash.GetLanguage,
		NewExtractor: extract.NewBash,
	},
}

// byExtension is built once at init from the config table.
var byExtension = func() map[string]*Config {
	m := make(map[string]*Config)
	for _, cfg := range configs {
		for _, ext := range cfg.Extensions {
			if _, dup := m[ext]; dup {
				panic("lang: duplicate extension registration: " + ext)
			}
			m[ext] = cfg
		}
	}
	return m
}()

// Resolve returns the language config for a file path, keyed on its
// lowercased extension.
func Resolve(path string) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	cfg, ok := byExtension[ext]
	if !ok {
		return nil, ErrUnsupported
	}
	return cfg, nil
}

// Supported reports whether any grammar claims the file's extension.
func Supported(path string) bool {
	_, err := Resolve(path)
	return err == nil
}

// Extensions returns every registered extension. The order is unspecified.
func Extensions() []string {
	out := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		out = append(out, ext)
	}
	return out
}

// Names returns the registered language names in table order.
func Names() []string {
	out := make([]string, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, cfg.Name)
	}
	return out
}
