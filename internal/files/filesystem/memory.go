package filesystem

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryEntry is a file or directory held by MemoryFileSystem
type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths are stored with forward slashes; relative paths resolve against root.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry // map of absolute path -> entry
	root    string                  // root directory path
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.mkdirAllLocked(root)
	return mfs
}

// AddFile adds a file to the in-memory filesystem, creating parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	mfs.mkdirAllLocked(path.Dir(absPath))
	mfs.putFileLocked(absPath, []byte(content), modTime)
}

// Files returns the absolute paths of all regular files, sorted.
func (mfs *MemoryFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var files []string
	for p, e := range mfs.entries {
		if !e.info.isDir {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files
}

// resolve converts filePath to a clean absolute slash path within the virtual filesystem.
func (mfs *MemoryFileSystem) resolve(filePath string) string {
	filePath = filepath.ToSlash(filePath)
	if filePath == "" || filePath == "." {
		return mfs.root
	}
	if strings.HasPrefix(filePath, "/") || path.IsAbs(filePath) {
		return path.Clean(filePath)
	}
	return path.Join(mfs.root, filePath)
}

func (mfs *MemoryFileSystem) putFileLocked(absPath string, data []byte, modTime time.Time) {
	content := make([]byte, len(data))
	copy(content, data)
	mfs.entries[absPath] = &memoryEntry{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    FileMode,
			modTime: modTime,
		},
	}
}

// mkdirAllLocked creates directory entries for dir and all of its parents.
func (mfs *MemoryFileSystem) mkdirAllLocked(dir string) *fs.PathError {
	if e, exists := mfs.entries[dir]; exists {
		if !e.info.isDir {
			return &fs.PathError{Op: "mkdir", Path: dir, Err: fs.ErrExist}
		}
		return nil
	}

	if parent := path.Dir(dir); parent != dir {
		if err := mfs.mkdirAllLocked(parent); err != nil {
			return err
		}
	}

	mfs.entries[dir] = &memoryEntry{
		info: &memoryFileInfo{
			name:    path.Base(dir),
			mode:    DirMode | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
	return nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, exists := mfs.entries[mfs.resolve(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return e.info, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, exists := mfs.entries[mfs.resolve(filePath)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if e.info.isDir {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrInvalid}
	}

	content := make([]byte, len(e.content))
	copy(content, e.content)
	return content, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.resolve(dirPath)
	e, exists := mfs.entries[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: dirPath, Err: fs.ErrNotExist}
	}
	if !e.info.isDir {
		return nil, &fs.PathError{Op: "readdirent", Path: dirPath, Err: fs.ErrInvalid}
	}

	var result []FileInfo
	for p, child := range mfs.entries {
		if p != absPath && path.Dir(p) == absPath {
			result = append(result, child.info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if err := mfs.mkdirAllLocked(mfs.resolve(dirPath)); err != nil {
		return err
	}
	return nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	parent, exists := mfs.entries[path.Dir(absPath)]
	if !exists || !parent.info.isDir {
		return &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if e, exists := mfs.entries[absPath]; exists && e.info.isDir {
		return &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrInvalid}
	}

	mfs.putFileLocked(absPath, data, time.Now())
	return nil
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(filePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	e, exists := mfs.entries[absPath]
	if !exists {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	if e.info.isDir {
		for p := range mfs.entries {
			if strings.HasPrefix(p, absPath+"/") {
				return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrExist}
			}
		}
	}

	delete(mfs.entries, absPath)
	return nil
}
