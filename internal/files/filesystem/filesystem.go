// Package filesystem abstracts file access behind a small provider
// interface so the CSV reader and the directory analyzer can be tested
// against an in-memory filesystem.
package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// Provider is a minimal filesystem surface: the source extracts live in
// one flat directory, so listing, stat, and whole-file reads suffice.
type Provider interface {
	// ReadFile reads a specific file at the given path.
	ReadFile(path string) ([]byte, error)

	// ReadDir reads the directory entries at the given path.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
