//go:build cgo && !purego
// +build cgo,!purego

package store

// Compiled for CGO builds. The C driver is faster and is what release
// binaries ship with.
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the SQLite driver to use.
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration.
	BuildMode = "cgo"
)
