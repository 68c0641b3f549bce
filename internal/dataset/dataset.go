// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset resolves files within the radar data directory and reads
// the optional dataset manifest describing known incident exports.
//
// All dataset paths are resolved against a single configured directory,
// never against the caller's working directory. The historical importer
// kept its data in a "data" directory sibling to the scripts; the same
// convention holds here, as an explicit configuration default.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir is the data directory used when none is configured.
const DefaultDir = "data"

// Resolve returns the path of name inside the data directory dir. Absolute
// names pass through untouched; an empty dir falls back to DefaultDir.
func Resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, name)
}

// EnsureDir creates the data directory if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return nil
}
