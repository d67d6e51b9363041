package filesystem

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files.
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements Provider for in-memory testing.
// Paths are normalized to forward slashes.
type MemoryFileSystem struct {
	files   map[string][]byte
	modTime time.Time
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files:   make(map[string][]byte),
		modTime: time.Now(),
	}
}

// AddFile registers a file with the given content.
func (m *MemoryFileSystem) AddFile(p string, content []byte) {
	m.files[normalize(p)] = content
}

func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	content, ok := m.files[normalize(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (m *MemoryFileSystem) ReadDir(p string) ([]FileInfo, error) {
	dir := normalize(p)
	prefix := dir + "/"
	if dir == "." {
		prefix = ""
	}

	var infos []FileInfo
	seen := make(map[string]bool)
	for name, content := range m.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		if rest == "" {
			continue
		}
		if idx := strings.Index(rest, "/"); idx >= 0 {
			// Direct subdirectory entry.
			sub := rest[:idx]
			if !seen[sub] {
				seen[sub] = true
				infos = append(infos, &memoryFileInfo{name: sub, modTime: m.modTime, isDir: true})
			}
			continue
		}
		infos = append(infos, &memoryFileInfo{
			name:    rest,
			size:    int64(len(content)),
			modTime: m.modTime,
		})
	}

	if len(infos) == 0 {
		if _, err := m.Stat(p); err != nil {
			return nil, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist}
		}
	}

	// Deterministic order for tests.
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	name := normalize(p)
	if content, ok := m.files[name]; ok {
		return &memoryFileInfo{
			name:    path.Base(name),
			size:    int64(len(content)),
			modTime: m.modTime,
		}, nil
	}

	// Directory if any file lives under it.
	prefix := name + "/"
	for f := range m.files {
		if strings.HasPrefix(f, prefix) {
			return &memoryFileInfo{name: path.Base(name), modTime: m.modTime, isDir: true}, nil
		}
	}

	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// Verify MemoryFileSystem implements the interface at compile time
var _ Provider = (*MemoryFileSystem)(nil)
