// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the file and directory operations the script
// synchronizer needs, enabling testability through an in-memory
// implementation while maintaining compatibility with the OS filesystem.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//
// Failures are reported as *fs.PathError so callers can use
// errors.Is(err, fs.ErrNotExist) regardless of the implementation.
package filesystem
