package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider reads and writes the script tree.
type FileSystemProvider interface {
	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// ReadDir reads the entries directly under the given directory, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// WriteFile replaces the content of the file at path, creating it if needed.
	// The parent directory must exist.
	WriteFile(path string, data []byte) error

	// Remove deletes the file at path.
	Remove(path string) error
}

// Exists reports whether path exists. Errors other than "not exist" are returned.
func Exists(p FileSystemProvider, path string) (bool, error) {
	_, err := p.Stat(path)
	if err == nil {
		return true, nil
	}
	if errorsIsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether path exists and is a directory.
func IsDir(p FileSystemProvider, path string) bool {
	info, err := p.Stat(path)
	return err == nil && info.IsDir()
}
