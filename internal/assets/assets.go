// Package assets resolves map asset paths across search directories.
package assets

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Reader is a tmx.ResourceReader that searches a list of directories,
// caching file contents so repeated references are served from memory.
// Directories are searched in reverse order (last added = highest
// priority).
type Reader struct {
	mu   sync.RWMutex
	dirs []string

	cache map[string][]byte

	// Stats
	hits   int
	misses int
}

// NewReader creates a reader over the given search directories.
func NewReader(dirs ...string) *Reader {
	return &Reader{
		dirs:  dirs,
		cache: make(map[string][]byte),
	}
}

// AddDir appends a search directory with highest priority.
func (r *Reader) AddDir(dir string) {
	r.mu.Lock()
	r.dirs = append(r.dirs, dir)
	r.mu.Unlock()
}

// OpenResource opens a resource by its slash-separated path.
func (r *Reader) OpenResource(path string) (io.ReadCloser, error) {
	data, err := r.load(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (r *Reader) load(path string) ([]byte, error) {
	r.mu.RLock()
	data, ok := r.cache[path]
	r.mu.RUnlock()
	if ok {
		r.mu.Lock()
		r.hits++
		r.mu.Unlock()
		return data, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses++

	rel := filepath.FromSlash(path)
	for i := len(r.dirs) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(r.dirs[i], rel))
		if err == nil {
			r.cache[path] = data
			return data, nil
		}
	}

	return nil, fmt.Errorf("file not found in search dirs: %s", path)
}

// Stats returns cache statistics.
func (r *Reader) Stats() (hits, misses int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hits, r.misses
}
