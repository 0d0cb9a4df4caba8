package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/codescope/codescope/internal/lang"
	"github.com/codescope/codescope/internal/scanner"
	"github.com/codescope/codescope/internal/store"
)

// Deps are the collaborators an Indexer runs against. All fields are
// required except Logger.
type Deps struct {
	Store   store.Store
	Scanner *scanner.Scanner
	Parsers *lang.Cache
	Logger  *slog.Logger
}

// Indexer drives index runs. Safe to reuse across runs; runs against the
// same repository are serialized by an advisory file lock.
type Indexer struct {
	store   store.Store
	scanner *scanner.Scanner
	parsers *lang.Cache
	log     *slog.Logger
}

// New wires an Indexer from its dependencies.
func New(deps Deps) *Indexer {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Indexer{
		store:   deps.Store,
		scanner: deps.Scanner,
		parsers: deps.Parsers,
		log:     log,
	}
}

// Run executes one index pass and returns its summary. Per-file failures
// are collected in the result rather than aborting the run. Faults that do
// stop the run (bad root, lock contention, store failures) come back as an
// error; when the scan already happened, the partial result is returned
// alongside so its counts can still be rendered.
func (ix *Indexer) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{}

	absRoot, err := filepath.Abs(opts.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve repo root: %w", err)
	}

	lock, err := acquireLock(ctx, absRoot)
	if err != nil {
		return nil, err
	}
	defer lock.release()

	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = start.Add(opts.Timeout)
	}

	// Progress never moves backwards within a run.
	lastPct := 0
	progress := func(stage string, pct int, current string) {
		if pct < lastPct {
			pct = lastPct
		}
		lastPct = pct
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Stage: stage, Percent: pct, Current: current})
		}
	}

	progress(StageScan, 5, "")
	files, err := ix.scanner.CollectFiles(ctx, &scanner.ScanOptions{
		RootDir:         absRoot,
		ExcludePatterns: opts.ExcludePatterns,
		MaxFileSize:     opts.MaxFileSize,
		IncludeTests:    opts.IncludeTests,
	})
	if err != nil {
		return fail(res, start, fmt.Errorf("scan repository: %w", err))
	}
	res.FilesScanned = len(files)
	progress(StageScan, 10, "")

	repo, err := ix.store.UpsertRepo(ctx, absRoot)
	if err != nil {
		return fail(res, start, fmt.Errorf("register repository: %w", err))
	}

	indexed, err := ix.store.GetIndexedFiles(ctx, repo.ID)
	if err != nil {
		return fail(res, start, fmt.Errorf("load indexed files: %w", err))
	}

	diff := ComputeDiff(files, indexed)
	if !opts.Incremental {
		diff = fullDiff(files, indexed)
	}
	progress(StageDiff, 15, "")
	ix.log.Debug("diff computed",
		"added", len(diff.Added),
		"modified", len(diff.Modified),
		"deleted", len(diff.Deleted))

	// Prune stale rows first so lookups never see files that are gone.
	for _, path := range diff.Deleted {
		if err := ix.store.DeleteFile(ctx, repo.ID, path); err != nil {
			res.addError(path, fmt.Sprintf("delete stale record: %v", err))
			continue
		}
		res.FilesDeleted++
	}

	work := make([]*scanner.FileInfo, 0, len(diff.Added)+len(diff.Modified))
	work = append(work, diff.Added...)
	work = append(work, diff.Modified...)
	sort.Slice(work, func(i, j int) bool { return work[i].Path < work[j].Path })
	res.FilesSkipped = res.FilesScanned - len(work)

	for i, f := range work {
		if !deadline.IsZero() && time.Now().After(deadline) {
			res.addError("", fmt.Sprintf("run exceeded %s; %d files left unprocessed",
				opts.Timeout, len(work)-i))
			break
		}
		ix.processFile(ctx, repo.ID, f, res)
		progress(StageIndex, 15+80*(i+1)/len(work), f.Path)
	}

	// A run only counts as successful when nothing went wrong at all; a
	// timeout or any per-file failure has already landed in the error list.
	res.Success = len(res.Errors) == 0
	if res.Success {
		if err := ix.store.TouchRepo(ctx, repo.ID, time.Now()); err != nil {
			ix.log.Warn("failed to stamp index time", "error", err)
		}
	}
	progress(StageDone, 100, "")

	res.Duration = time.Since(start)
	ix.log.Info("index run complete",
		"scanned", res.FilesScanned,
		"indexed", res.FilesIndexed,
		"skipped", res.FilesSkipped,
		"deleted", res.FilesDeleted,
		"symbols", res.SymbolsFound,
		"imports", res.ImportsFound,
		"errors", len(res.Errors),
		"duration", res.Duration,
		"success", res.Success)
	return res, nil
}

// processFile indexes one file. Failures land in the result's error list;
// a file whose content can't be read is left untouched so the next run
// retries it.
func (ix *Indexer) processFile(ctx context.Context, repoID int64, f *scanner.FileInfo, res *Result) {
	src, err := os.ReadFile(f.AbsPath)
	if err != nil {
		res.addError(f.Path, fmt.Sprintf("read: %v", err))
		return
	}

	fileID, err := ix.store.UpsertFile(ctx, repoID, f.Path, f.Mtime, f.Size)
	if err != nil {
		res.addError(f.Path, fmt.Sprintf("record file: %v", err))
		return
	}

	parsed, err := ix.parsers.Parse(ctx, f.Path, src)
	if err != nil {
		// The file row already carries the new mtime; clear any symbols
		// from a previous version so the index holds no stale data.
		if cerr := ix.store.ReplaceFileIndex(ctx, fileID, nil, nil); cerr != nil {
			res.addError(f.Path, fmt.Sprintf("clear index: %v", cerr))
		}
		res.addError(f.Path, fmt.Sprintf("parse: %v", err))
		return
	}

	if err := ix.store.ReplaceFileIndex(ctx, fileID, parsed.Symbols, parsed.Imports); err != nil {
		res.addError(f.Path, fmt.Sprintf("persist: %v", err))
		return
	}

	for _, msg := range parsed.Errors {
		res.addError(f.Path, msg)
	}
	res.FilesIndexed++
	res.SymbolsFound += len(parsed.Symbols)
	res.ImportsFound += len(parsed.Imports)
}

// fail finalizes a result for a fault that stops the run outright. The
// counts reflect whatever completed before the fault, so callers can still
// render them.
func fail(res *Result, start time.Time, err error) (*Result, error) {
	res.Success = false
	res.addError("", err.Error())
	res.Duration = time.Since(start)
	return res, err
}

// fullDiff treats every scanned file as work while still pruning stale
// records, for non-incremental runs.
func fullDiff(scanned []*scanner.FileInfo, indexed map[string]*store.FileRecord) *Diff {
	d := &Diff{}
	seen := make(map[string]bool, len(scanned))
	for _, f := range scanned {
		seen[f.Path] = true
		if _, ok := indexed[f.Path]; ok {
			d.Modified = append(d.Modified, f)
		} else {
			d.Added = append(d.Added, f)
		}
	}
	for path := range indexed {
		if !seen[path] {
			d.Deleted = append(d.Deleted, path)
		}
	}
	sort.Strings(d.Deleted)
	return d
}

// addError appends to the capped error list. The hundredth slot is reserved
// for a single truncation notice.
func (r *Result) addError(path, msg string) {
	if len(r.Errors) >= maxErrors {
		return
	}
	if len(r.Errors) == maxErrors-1 {
		r.Errors = append(r.Errors, FileError{Message: "too many errors; remainder omitted"})
		return
	}
	r.Errors = append(r.Errors, FileError{Path: path, Message: msg})
}
