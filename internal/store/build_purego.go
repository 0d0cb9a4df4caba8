//go:build !cgo || purego
// +build !cgo purego

package store

// Compiled when CGO is unavailable or the purego tag is set. The pure Go
// driver needs no C compiler and cross-compiles everywhere.
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use.
	DriverName = "sqlite"

	// BuildMode describes the current build configuration.
	BuildMode = "purego"
)
