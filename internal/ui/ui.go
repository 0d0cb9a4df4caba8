// Package ui renders command output for humans: progress lines while
// indexing, and result tables for queries. Output is styled only when
// attached to a terminal.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/codescope/codescope/internal/index"
	"github.com/codescope/codescope/internal/store"
)

// Renderer is the output contract used by the CLI commands.
type Renderer interface {
	// Progress renders an index progress update.
	Progress(p index.Progress)

	// Summary renders the outcome of an index run.
	Summary(res *index.Result)

	// Status renders a repository's index status.
	Status(st *store.Status)

	// Symbols renders symbol lookup matches.
	Symbols(name string, matches []*store.SymbolRecord)

	// Importers renders files importing a module path.
	Importers(path string, matches []*store.ImportRecord)
}

// Config controls renderer construction.
type Config struct {
	Output  io.Writer
	NoColor bool
	Quiet   bool
}

// New builds a renderer for the given output. Styling is disabled when the
// output is not a terminal or NoColor is set.
func New(cfg Config) Renderer {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	color := !cfg.NoColor
	if f, ok := out.(*os.File); ok {
		color = color && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	} else {
		color = false
	}
	return newPlainRenderer(out, color, cfg.Quiet)
}
