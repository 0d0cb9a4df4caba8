package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/codescope/codescope/internal/index"
	"github.com/codescope/codescope/internal/store"
)

// plainRenderer writes line-oriented output suitable for terminals, CI,
// and pipes alike.
type plainRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	styles styles
	quiet  bool

	lastStage string
}

func newPlainRenderer(out io.Writer, color, quiet bool) *plainRenderer {
	return &plainRenderer{
		out:    out,
		styles: newStyles(color),
		quiet:  quiet,
	}
}

func (r *plainRenderer) Progress(p index.Progress) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// One line per stage transition keeps pipe output readable.
	if p.Stage != r.lastStage {
		r.lastStage = p.Stage
		_, _ = fmt.Fprintf(r.out, "[%3d%%] %s\n", p.Percent, p.Stage)
	}
}

func (r *plainRenderer) Summary(res *index.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := r.styles.Success.Render("ok")
	if !res.Success {
		status = r.styles.Error.Render("incomplete")
	}
	_, _ = fmt.Fprintf(r.out, "%s: %d scanned, %d indexed, %d skipped, %d deleted in %s\n",
		status, res.FilesScanned, res.FilesIndexed, res.FilesSkipped, res.FilesDeleted,
		res.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(r.out, "%d symbols, %d imports\n", res.SymbolsFound, res.ImportsFound)

	for _, e := range res.Errors {
		if e.Path != "" {
			_, _ = fmt.Fprintf(r.out, "%s %s: %s\n", r.styles.Error.Render("error"), e.Path, e.Message)
		} else {
			_, _ = fmt.Fprintf(r.out, "%s %s\n", r.styles.Error.Render("error"), e.Message)
		}
	}
}

func (r *plainRenderer) Status(st *store.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintln(r.out, r.styles.Header.Render(st.Root))
	_, _ = fmt.Fprintf(r.out, "  files:   %d\n", st.Files)
	_, _ = fmt.Fprintf(r.out, "  symbols: %d\n", st.Symbols)
	_, _ = fmt.Fprintf(r.out, "  imports: %d\n", st.Imports)
	if st.LastIndexedAt.IsZero() {
		_, _ = fmt.Fprintf(r.out, "  indexed: %s\n", r.styles.Muted.Render("never"))
	} else {
		_, _ = fmt.Fprintf(r.out, "  indexed: %s\n", st.LastIndexedAt.Format(time.RFC3339))
	}
}

func (r *plainRenderer) Symbols(name string, matches []*store.SymbolRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(matches) == 0 {
		_, _ = fmt.Fprintf(r.out, "no symbols named %q\n", name)
		return
	}
	for _, m := range matches {
		qualified := m.Name
		if m.Scope != "" {
			qualified = m.Scope + "." + m.Name
		}
		_, _ = fmt.Fprintf(r.out, "%s:%d %s %s%s\n",
			r.styles.Path.Render(m.FilePath), m.StartLine,
			r.styles.Kind.Render(m.Kind), qualified, m.Signature)
	}
}

func (r *plainRenderer) Importers(path string, matches []*store.ImportRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(matches) == 0 {
		_, _ = fmt.Fprintf(r.out, "nothing imports %q\n", path)
		return
	}
	for _, m := range matches {
		detail := m.Name
		if m.LocalName != "" {
			detail += " as " + m.LocalName
		}
		_, _ = fmt.Fprintf(r.out, "%s:%d %s\n", r.styles.Path.Render(m.FilePath), m.Line, detail)
	}
}
