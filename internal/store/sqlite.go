package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codescope/codescope/internal/extract"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// openDatabase opens a SQLite database with appropriate settings.
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Cascading deletes depend on this
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

// Open creates a SQLite store at dbPath, applying any pending schema
// migrations.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertRepo(ctx context.Context, root string) (*Repo, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO repos (root) VALUES (?)
		ON CONFLICT(root) DO NOTHING`, root)
	if err != nil {
		return nil, fmt.Errorf("upsert repo: %w", err)
	}

	var repo Repo
	var lastIndexed sql.NullTime
	err = s.db.QueryRowContext(ctx, `
		SELECT id, root, created_at, last_indexed_at FROM repos WHERE root = ?`, root).
		Scan(&repo.ID, &repo.Root, &repo.CreatedAt, &lastIndexed)
	if err != nil {
		return nil, fmt.Errorf("load repo: %w", err)
	}
	repo.LastIndexedAt = lastIndexed.Time
	return &repo, nil
}

func (s *SQLiteStore) GetRepo(ctx context.Context, root string) (*Repo, error) {
	var repo Repo
	var lastIndexed sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, root, created_at, last_indexed_at FROM repos WHERE root = ?`, root).
		Scan(&repo.ID, &repo.Root, &repo.CreatedAt, &lastIndexed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load repo: %w", err)
	}
	repo.LastIndexedAt = lastIndexed.Time
	return &repo, nil
}

func (s *SQLiteStore) TouchRepo(ctx context.Context, repoID int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE repos SET last_indexed_at = ? WHERE id = ?`, at, repoID)
	if err != nil {
		return fmt.Errorf("touch repo: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetIndexedFiles(ctx context.Context, repoID int64) (map[string]*FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, repo_id, path, mtime, size, indexed_at
		FROM files WHERE repo_id = ?`, repoID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]*FileRecord)
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.ID, &f.RepoID, &f.Path, &f.Mtime, &f.Size, &f.IndexedAt); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		out[f.Path] = &f
	}
	return out, rows.Err()
}

// UpsertFile inserts or refreshes a file row. ON CONFLICT UPDATE keeps the
// row id stable so dependent symbol rows survive metadata refreshes.
func (s *SQLiteStore) UpsertFile(ctx context.Context, repoID int64, path string, mtime, size int64) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (repo_id, path, mtime, size, indexed_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(repo_id, path) DO UPDATE SET
			mtime = excluded.mtime,
			size = excluded.size,
			indexed_at = CURRENT_TIMESTAMP`,
		repoID, path, mtime, size)
	if err != nil {
		return 0, fmt.Errorf("upsert file %s: %w", path, err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM files WHERE repo_id = ? AND path = ?`, repoID, path).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("load file id %s: %w", path, err)
	}
	return id, nil
}

func (s *SQLiteStore) DeleteFile(ctx context.Context, repoID int64, path string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM files WHERE repo_id = ? AND path = ?`, repoID, path)
	if err != nil {
		return fmt.Errorf("delete file %s: %w", path, err)
	}
	return nil
}

// ReplaceFileIndex swaps a file's symbols and imports in one transaction.
// A reader never observes the file half-indexed.
func (s *SQLiteStore) ReplaceFileIndex(ctx context.Context, fileID int64, symbols []*extract.Symbol, imports []*extract.Import) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM symbols WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("clear symbols: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM imports WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("clear imports: %w", err)
	}

	for _, sym := range symbols {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO symbols (file_id, name, kind, start_line, end_line, exported, scope, signature)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			fileID, sym.Name, string(sym.Kind), sym.StartLine, sym.EndLine,
			sym.Exported, sym.Scope, sym.Signature)
		if err != nil {
			return fmt.Errorf("insert symbol %s: %w", sym.Name, err)
		}
	}

	for _, imp := range imports {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO imports (file_id, name, path, line, local_name, is_namespace)
			VALUES (?, ?, ?, ?, ?, ?)`,
			fileID, imp.Name, imp.Path, imp.Line, imp.LocalName, imp.IsNamespace)
		if err != nil {
			return fmt.Errorf("insert import %s: %w", imp.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetStatus(ctx context.Context, repoID int64) (*Status, error) {
	var st Status
	var lastIndexed sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT root, last_indexed_at FROM repos WHERE id = ?`, repoID).
		Scan(&st.Root, &lastIndexed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load repo: %w", err)
	}
	st.LastIndexedAt = lastIndexed.Time

	err = s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM files WHERE repo_id = ?),
			(SELECT COUNT(*) FROM symbols s JOIN files f ON s.file_id = f.id WHERE f.repo_id = ?),
			(SELECT COUNT(*) FROM imports i JOIN files f ON i.file_id = f.id WHERE f.repo_id = ?)`,
		repoID, repoID, repoID).
		Scan(&st.Files, &st.Symbols, &st.Imports)
	if err != nil {
		return nil, fmt.Errorf("count index rows: %w", err)
	}
	return &st, nil
}

func (s *SQLiteStore) LookupSymbol(ctx context.Context, repoID int64, name string) ([]*SymbolRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.file_id, f.path, s.name, s.kind, s.start_line, s.end_line,
		       s.exported, s.scope, s.signature
		FROM symbols s
		JOIN files f ON s.file_id = f.id
		WHERE f.repo_id = ? AND s.name = ?
		ORDER BY f.path, s.start_line`, repoID, name)
	if err != nil {
		return nil, fmt.Errorf("lookup symbol %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	var out []*SymbolRecord
	for rows.Next() {
		var r SymbolRecord
		if err := rows.Scan(&r.ID, &r.FileID, &r.FilePath, &r.Name, &r.Kind,
			&r.StartLine, &r.EndLine, &r.Exported, &r.Scope, &r.Signature); err != nil {
			return nil, fmt.Errorf("scan symbol row: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) FindImporters(ctx context.Context, repoID int64, path string) ([]*ImportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.file_id, f.path, i.name, i.path, i.line, i.local_name, i.is_namespace
		FROM imports i
		JOIN files f ON i.file_id = f.id
		WHERE f.repo_id = ? AND i.path = ?
		ORDER BY f.path, i.line`, repoID, path)
	if err != nil {
		return nil, fmt.Errorf("find importers of %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	var out []*ImportRecord
	for rows.Next() {
		var r ImportRecord
		if err := rows.Scan(&r.ID, &r.FileID, &r.FilePath, &r.Name, &r.Path,
			&r.Line, &r.LocalName, &r.IsNamespace); err != nil {
			return nil, fmt.Errorf("scan import row: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
