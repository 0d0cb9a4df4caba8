// Package index orchestrates a repository index run: scan the tree, diff
// against stored state, and re-extract only what changed.
package index

import (
	"time"
)

// maxErrors caps the error list carried by a Result. When the cap is hit,
// the final entry is a single truncation notice instead of a real error.
const maxErrors = 100

// Stage names reported through the progress callback.
const (
	StageScan  = "scan"
	StageDiff  = "diff"
	StageIndex = "index"
	StageDone  = "done"
)

// Progress is a point-in-time report of a running index. Percent never
// decreases over the lifetime of one run.
type Progress struct {
	Stage   string
	Percent int
	Current string // file being processed, empty outside StageIndex
}

// Options configures one index run.
type Options struct {
	// RepoRoot is the repository to index.
	RepoRoot string

	// Incremental reuses stored state and only reprocesses changed files.
	// A full run reprocesses everything but still prunes deleted files.
	Incremental bool

	// MaxFileSize is passed through to the scanner (0 = default).
	MaxFileSize int64

	// ExcludePatterns are extra scanner exclusions.
	ExcludePatterns []string

	// IncludeTests indexes test files too.
	IncludeTests bool

	// Timeout bounds the whole run. Zero means no limit. The check is
	// between files, so one slow file can overrun the limit slightly.
	Timeout time.Duration

	// OnProgress, when set, receives progress updates.
	OnProgress func(Progress)
}

// FileError records one per-file failure without aborting the run.
type FileError struct {
	Path    string
	Message string
}

// Result summarizes a completed index run.
type Result struct {
	Success      bool
	FilesScanned int
	FilesIndexed int
	FilesSkipped int
	FilesDeleted int
	SymbolsFound int
	ImportsFound int
	Duration     time.Duration
	Errors       []FileError
}
