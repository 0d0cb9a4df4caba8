package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codescope/codescope/internal/index"
	"github.com/codescope/codescope/internal/store"
)

func newTestRenderer(quiet bool) (*plainRenderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return newPlainRenderer(&buf, false, quiet), &buf
}

func TestProgressPrintsOncePerStage(t *testing.T) {
	r, buf := newTestRenderer(false)

	r.Progress(index.Progress{Stage: index.StageScan, Percent: 5})
	r.Progress(index.Progress{Stage: index.StageIndex, Percent: 15})
	r.Progress(index.Progress{Stage: index.StageIndex, Percent: 55})
	r.Progress(index.Progress{Stage: index.StageIndex, Percent: 95})
	r.Progress(index.Progress{Stage: index.StageDone, Percent: 100})

	out := buf.String()
	assert.Equal(t, 3, bytes.Count([]byte(out), []byte("\n")), "one line per stage transition")
	assert.Contains(t, out, "[  5%] scan")
	assert.Contains(t, out, "[ 15%] index")
	assert.Contains(t, out, "[100%] done")
	assert.NotContains(t, out, "55")
}

func TestProgressQuietSuppressesOutput(t *testing.T) {
	r, buf := newTestRenderer(true)
	r.Progress(index.Progress{Stage: index.StageScan, Percent: 5})
	assert.Empty(t, buf.String())
}

func TestSummary(t *testing.T) {
	r, buf := newTestRenderer(false)

	r.Summary(&index.Result{
		Success:      true,
		FilesScanned: 10,
		FilesIndexed: 4,
		FilesSkipped: 6,
		SymbolsFound: 42,
		ImportsFound: 7,
		Duration:     1234 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "ok: 10 scanned, 4 indexed, 6 skipped, 0 deleted in 1.234s")
	assert.Contains(t, out, "42 symbols, 7 imports")
}

func TestSummaryIncompleteListsErrors(t *testing.T) {
	r, buf := newTestRenderer(false)

	r.Summary(&index.Result{
		Success: false,
		Errors: []index.FileError{
			{Path: "broken.rb", Message: "parse failed"},
			{Message: "run exceeded 5s; 3 files left unprocessed"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "incomplete:")
	assert.Contains(t, out, "error broken.rb: parse failed")
	assert.Contains(t, out, "error run exceeded 5s")
}

func TestStatus(t *testing.T) {
	r, buf := newTestRenderer(false)

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	r.Status(&store.Status{Root: "/repo", Files: 3, Symbols: 12, Imports: 5, LastIndexedAt: at})

	out := buf.String()
	assert.Contains(t, out, "/repo")
	assert.Contains(t, out, "files:   3")
	assert.Contains(t, out, "indexed: 2026-03-14T09:26:53Z")
}

func TestStatusNeverIndexed(t *testing.T) {
	r, buf := newTestRenderer(false)
	r.Status(&store.Status{Root: "/repo"})
	assert.Contains(t, buf.String(), "indexed: never")
}

func TestSymbols(t *testing.T) {
	r, buf := newTestRenderer(false)

	r.Symbols("Start", []*store.SymbolRecord{
		{FilePath: "server/server.go", StartLine: 5, Kind: "method", Name: "Start", Scope: "Server", Signature: "() error"},
	})
	assert.Contains(t, buf.String(), "server/server.go:5 method Server.Start() error")

	buf.Reset()
	r.Symbols("Missing", nil)
	assert.Contains(t, buf.String(), `no symbols named "Missing"`)
}

func TestImporters(t *testing.T) {
	r, buf := newTestRenderer(false)

	r.Importers("react", []*store.ImportRecord{
		{FilePath: "app.tsx", Line: 1, Name: "default", LocalName: "React"},
		{FilePath: "hooks.ts", Line: 2, Name: "useEffect", LocalName: "effect"},
	})

	out := buf.String()
	assert.Contains(t, out, "app.tsx:1 default as React")
	assert.Contains(t, out, "hooks.ts:2 useEffect as effect")

	buf.Reset()
	r.Importers("vue", nil)
	assert.Contains(t, buf.String(), `nothing imports "vue"`)
}
