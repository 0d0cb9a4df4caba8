package scanner

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codescope/codescope/internal/lang"
)

// Scanner discovers indexable files in a repository directory.
type Scanner struct{}

// New creates a new Scanner instance.
func New() *Scanner {
	return &Scanner{}
}

// Scan discovers all indexable files under the root directory. It returns a
// channel of ScanResult that streams files as they are discovered; the
// channel is closed when scanning is complete.
func (s *Scanner) Scan(ctx context.Context, opts *ScanOptions) (<-chan ScanResult, error) {
	if opts == nil {
		opts = &ScanOptions{}
	}

	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = "."
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", absRoot)
	}

	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan ScanResult, workers*8)

	go func() {
		defer close(results)
		s.scan(ctx, absRoot, opts, maxFileSize, workers, results)
	}()

	return results, nil
}

// CollectFiles drains a full scan into a slice sorted by path. Sorted order
// makes index runs deterministic.
func (s *Scanner) CollectFiles(ctx context.Context, opts *ScanOptions) ([]*FileInfo, error) {
	results, err := s.Scan(ctx, opts)
	if err != nil {
		return nil, err
	}

	var files []*FileInfo
	for res := range results {
		if res.Error != nil {
			return nil, res.Error
		}
		files = append(files, res.File)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// scan walks the tree on one goroutine and fans candidate files out to a
// pool of sniff workers. The walk applies the cheap metadata filters; the
// workers do the content sniff that needs an open file.
func (s *Scanner) scan(ctx context.Context, absRoot string, opts *ScanOptions, maxFileSize int64, workers int, results chan<- ScanResult) {
	candidates := make(chan *FileInfo, workers*8)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(candidates)
		return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				return nil // skip files we can't access
			}

			relPath, err := filepath.Rel(absRoot, path)
			if err != nil {
				return nil
			}
			if relPath == "." {
				return nil
			}
			relPath = filepath.ToSlash(relPath)

			if d.IsDir() {
				if s.shouldExcludeDir(relPath, opts) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.Type()&fs.ModeSymlink != 0 && !opts.FollowSymlinks {
				return nil
			}

			// Only files a registered grammar can parse count toward a run.
			if !lang.Supported(relPath) {
				return nil
			}

			if s.shouldExcludeFile(relPath, opts) {
				return nil
			}

			if !opts.IncludeTests && isTestFile(relPath) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.Size() > maxFileSize {
				return nil
			}

			fileInfo := &FileInfo{
				Path:    relPath,
				AbsPath: path,
				Size:    info.Size(),
				Mtime:   info.ModTime().UnixMilli(),
			}

			select {
			case candidates <- fileInfo:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for f := range candidates {
				if isBinaryFile(f.AbsPath) {
					continue
				}
				select {
				case results <- ScanResult{File: f}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		select {
		case results <- ScanResult{Error: err}:
		default:
		}
	}
}

// shouldExcludeDir checks default and custom directory exclusions.
func (s *Scanner) shouldExcludeDir(relPath string, opts *ScanOptions) bool {
	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}
	for _, name := range defaultExcludeDirs {
		if base == name {
			return true
		}
	}
	for _, pattern := range opts.ExcludePatterns {
		if matchPattern(relPath, base, pattern) {
			return true
		}
	}
	return false
}

// shouldExcludeFile checks custom file exclusions.
func (s *Scanner) shouldExcludeFile(relPath string, opts *ScanOptions) bool {
	base := filepath.Base(relPath)
	for _, pattern := range opts.ExcludePatterns {
		if matchPattern(relPath, base, pattern) {
			return true
		}
	}
	return false
}

// matchPattern matches a relative path against an exclusion pattern.
// Supported forms: "**/name" and "**/name/**" match a path component
// anywhere, "dir/**" matches a subtree, "*.ext" matches a basename glob,
// and anything else matches the path or a path prefix exactly.
func matchPattern(relPath, base, pattern string) bool {
	if strings.HasPrefix(pattern, "**/") {
		inner := strings.TrimSuffix(strings.TrimPrefix(pattern, "**/"), "/**")
		if strings.ContainsAny(inner, "*?[") {
			ok, err := filepath.Match(inner, base)
			return err == nil && ok
		}
		for _, part := range strings.Split(relPath, "/") {
			if part == inner {
				return true
			}
		}
		return false
	}

	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return relPath == prefix || strings.HasPrefix(relPath, prefix+"/")
	}

	if strings.ContainsAny(pattern, "*?[") {
		ok, err := filepath.Match(pattern, base)
		return err == nil && ok
	}

	return relPath == pattern || strings.HasPrefix(relPath, pattern+"/")
}

// isTestFile recognizes per-language test naming conventions.
func isTestFile(relPath string) bool {
	base := filepath.Base(relPath)
	switch {
	case strings.HasSuffix(base, "_test.go"),
		strings.HasSuffix(base, "_test.py"),
		strings.HasSuffix(base, "_test.rb"),
		strings.HasSuffix(base, "_spec.rb"),
		strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py"),
		strings.Contains(base, ".test."),
		strings.Contains(base, ".spec."),
		strings.HasSuffix(base, "Test.java"),
		strings.HasSuffix(base, "Tests.cs"):
		return true
	}
	for _, part := range strings.Split(filepath.Dir(relPath), "/") {
		if part == "__tests__" {
			return true
		}
	}
	return false
}

// isBinaryFile checks for null bytes in the first 512 bytes.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil {
		return false
	}
	return bytes.Contains(buf[:n], []byte{0})
}

// IsDefaultExcludedDir reports whether a directory name is skipped by
// default, like .git or node_modules. The watcher uses this to avoid
// registering watches inside trees the scanner would never index.
func IsDefaultExcludedDir(name string) bool {
	for _, d := range defaultExcludeDirs {
		if name == d {
			return true
		}
	}
	return false
}

// defaultExcludeDirs are directory names skipped everywhere in the tree.
var defaultExcludeDirs = []string{
	".codescope",
	".git",
	".hg",
	".svn",
	"node_modules",
	"vendor",
	"__pycache__",
	".venv",
	"venv",
	"dist",
	"build",
	"target",
	".idea",
	".vscode",
}
