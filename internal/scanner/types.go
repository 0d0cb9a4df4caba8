// Package scanner discovers indexable source files under a repository root,
// applying exclusion patterns, size limits, and binary detection before any
// file reaches the parser.
package scanner

// FileInfo contains metadata about a discovered file. Path uses forward
// slashes relative to the repository root so records compare identically
// across platforms; Mtime is Unix milliseconds for the same reason.
type FileInfo struct {
	Path    string // relative path, forward slashes
	AbsPath string // absolute path on disk
	Size    int64  // file size in bytes
	Mtime   int64  // modification time, Unix milliseconds
}

// ScanOptions configures the scanner behavior.
type ScanOptions struct {
	// RootDir is the repository root directory to scan.
	RootDir string

	// ExcludePatterns specifies patterns to exclude beyond the defaults.
	ExcludePatterns []string

	// MaxFileSize is the maximum file size in bytes (0 = 1MB default).
	MaxFileSize int64

	// IncludeTests includes test files, which are skipped by default.
	IncludeTests bool

	// Workers is the number of concurrent sniff workers (0 = NumCPU).
	Workers int

	// FollowSymlinks enables following symbolic links (default: false).
	FollowSymlinks bool
}

// ScanResult is returned from the scanner channel.
type ScanResult struct {
	File  *FileInfo
	Error error
}

// DefaultMaxFileSize is the default maximum file size (1MB). Files above
// this are almost always generated or vendored bundles.
const DefaultMaxFileSize = 1 * 1024 * 1024
