// Package store persists index state in SQLite: repositories, their files,
// and the symbols and imports extracted from each file. Deleting a file row
// cascades to its symbols and imports, so the index can never hold rows for
// a file that is no longer tracked.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/codescope/codescope/internal/extract"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist.
	ErrNotFound = errors.New("not found")
)

// Repo is one indexed repository root.
type Repo struct {
	ID            int64
	Root          string
	CreatedAt     time.Time
	LastIndexedAt time.Time
}

// FileRecord is the stored state of one indexed file. Mtime is Unix
// milliseconds, matching what the scanner reports, so staleness checks are
// a plain integer comparison.
type FileRecord struct {
	ID        int64
	RepoID    int64
	Path      string
	Mtime     int64
	Size      int64
	IndexedAt time.Time
}

// SymbolRecord is a stored symbol joined with its file path.
type SymbolRecord struct {
	ID        int64  `json:"-"`
	FileID    int64  `json:"-"`
	FilePath  string `json:"file"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Exported  bool   `json:"exported"`
	Scope     string `json:"scope,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// ImportRecord is a stored import joined with the importing file path.
type ImportRecord struct {
	ID          int64  `json:"-"`
	FileID      int64  `json:"-"`
	FilePath    string `json:"file"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Line        int    `json:"line"`
	LocalName   string `json:"local_name,omitempty"`
	IsNamespace bool   `json:"is_namespace"`
}

// Status summarizes the index state of one repository.
type Status struct {
	Root          string    `json:"root"`
	Files         int       `json:"files"`
	Symbols       int       `json:"symbols"`
	Imports       int       `json:"imports"`
	LastIndexedAt time.Time `json:"last_indexed_at"`
}

// Store is the persistence contract the indexer runs against.
type Store interface {
	// UpsertRepo registers a repository root and returns its row,
	// creating it on first sight.
	UpsertRepo(ctx context.Context, root string) (*Repo, error)

	// GetRepo looks up a repository by root without creating it.
	// Returns ErrNotFound for roots that were never indexed.
	GetRepo(ctx context.Context, root string) (*Repo, error)

	// TouchRepo stamps the repository's last successful index time.
	TouchRepo(ctx context.Context, repoID int64, at time.Time) error

	// GetIndexedFiles returns every file record for a repository, keyed
	// by relative path.
	GetIndexedFiles(ctx context.Context, repoID int64) (map[string]*FileRecord, error)

	// UpsertFile records a file's current mtime and size. The file's row
	// id is stable across upserts so symbol rows stay attached.
	UpsertFile(ctx context.Context, repoID int64, path string, mtime, size int64) (int64, error)

	// DeleteFile removes a file row; its symbols and imports cascade.
	DeleteFile(ctx context.Context, repoID int64, path string) error

	// ReplaceFileIndex atomically swaps a file's symbols and imports for
	// the given extraction result.
	ReplaceFileIndex(ctx context.Context, fileID int64, symbols []*extract.Symbol, imports []*extract.Import) error

	// GetStatus summarizes one repository's index.
	GetStatus(ctx context.Context, repoID int64) (*Status, error)

	// LookupSymbol finds symbols by exact name across a repository.
	LookupSymbol(ctx context.Context, repoID int64, name string) ([]*SymbolRecord, error)

	// FindImporters returns the imports across a repository whose module
	// path matches the given specifier.
	FindImporters(ctx context.Context, repoID int64, path string) ([]*ImportRecord, error)

	Close() error
}
