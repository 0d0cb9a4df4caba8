package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file under root, making parent directories as needed.
func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func collectPaths(files []*FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestScanDiscoversSupportedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "lib/util.py", []byte("x = 1\n"))
	writeFile(t, root, "web/app.tsx", []byte("export const x = 1;\n"))
	writeFile(t, root, "README.md", []byte("# readme\n"))
	writeFile(t, root, "data.json", []byte("{}\n"))

	files, err := New().CollectFiles(context.Background(), &ScanOptions{RootDir: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/util.py", "main.go", "web/app.tsx"}, collectPaths(files))
}

func TestScanRecordsMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))

	files, err := New().CollectFiles(context.Background(), &ScanOptions{RootDir: root})
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, "main.go", f.Path)
	assert.Equal(t, filepath.Join(root, "main.go"), f.AbsPath)
	assert.Equal(t, int64(len("package main\n")), f.Size)
	assert.Positive(t, f.Mtime)
}

func TestScanSkipsDefaultDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "node_modules/react/index.js", []byte("module.exports = {};\n"))
	writeFile(t, root, "vendor/lib/lib.go", []byte("package lib\n"))
	writeFile(t, root, ".git/hooks/pre-commit.sh", []byte("#!/bin/sh\n"))

	files, err := New().CollectFiles(context.Background(), &ScanOptions{RootDir: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, collectPaths(files))
}

func TestScanExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "gen/schema.go", []byte("package gen\n"))
	writeFile(t, root, "a/deep/gen.go", []byte("package deep\n"))

	files, err := New().CollectFiles(context.Background(), &ScanOptions{
		RootDir:         root,
		ExcludePatterns: []string{"gen/**", "**/gen.go"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, collectPaths(files))
}

func TestScanSkipsTestFilesByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "main_test.go", []byte("package main\n"))
	writeFile(t, root, "src/app.test.ts", []byte("export {};\n"))
	writeFile(t, root, "tests/test_api.py", []byte("x = 1\n"))
	writeFile(t, root, "src/__tests__/util.js", []byte("var x;\n"))

	files, err := New().CollectFiles(context.Background(), &ScanOptions{RootDir: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, collectPaths(files))

	all, err := New().CollectFiles(context.Background(), &ScanOptions{RootDir: root, IncludeTests: true})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestScanSkipsOversizedAndBinary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))

	big := make([]byte, 2048)
	for i := range big {
		big[i] = 'a'
	}
	writeFile(t, root, "big.go", big)

	writeFile(t, root, "blob.go", []byte("package x\x00\x01\x02"))

	files, err := New().CollectFiles(context.Background(), &ScanOptions{
		RootDir:     root,
		MaxFileSize: 1024,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, collectPaths(files))
}

func TestScanInvalidRoot(t *testing.T) {
	_, err := New().Scan(context.Background(), &ScanOptions{RootDir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestIsDefaultExcludedDir(t *testing.T) {
	assert.True(t, IsDefaultExcludedDir("node_modules"))
	assert.True(t, IsDefaultExcludedDir(".git"))
	assert.False(t, IsDefaultExcludedDir("src"))
}
