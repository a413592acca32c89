package tmx

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"
)

// ResourceReader opens named resources as byte streams. Implementations
// must be safe for concurrent use.
type ResourceReader interface {
	OpenResource(path string) (io.ReadCloser, error)
}

// FilesystemReader reads resources from the OS filesystem.
type FilesystemReader struct{}

func (FilesystemReader) OpenResource(p string) (io.ReadCloser, error) {
	return os.Open(filepath.FromSlash(p))
}

// FSReader adapts an fs.FS (an embed.FS, for instance) to ResourceReader.
type FSReader struct {
	FS fs.FS
}

func (r FSReader) OpenResource(p string) (io.ReadCloser, error) {
	return r.FS.Open(p)
}

// Loader resolves maps, tilesets, templates and worlds. External tileset
// and template references are parsed at most once per canonical path and
// shared by every referencing document; concurrent loads of the same path
// are collapsed to a single parse. A Loader is safe for concurrent use.
type Loader struct {
	reader ResourceReader
	cache  ResourceCache
	group  singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithResourceReader makes the loader read resources through r instead of
// the OS filesystem.
func WithResourceReader(r ResourceReader) LoaderOption {
	return func(l *Loader) { l.reader = r }
}

// WithCache makes the loader share c instead of owning a private cache.
func WithCache(c ResourceCache) LoaderOption {
	return func(l *Loader) { l.cache = c }
}

// NewLoader creates a Loader reading from the OS filesystem with a
// private cache, unless configured otherwise.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		reader: FilesystemReader{},
		cache:  NewMemoryCache(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cache exposes the loader's resource cache.
func (l *Loader) Cache() ResourceCache { return l.cache }

// LoadMap loads and fully resolves a .tmx map. Maps are not cached; their
// external tilesets and templates are.
func (l *Loader) LoadMap(p string) (*Map, error) {
	p = canonicalPath(p)
	data, err := l.readResource(p)
	if err != nil {
		return nil, err
	}
	return parseMap(l, data, p)
}

// LoadTileset loads an external .tsx tileset through the cache.
func (l *Loader) LoadTileset(p string) (*Tileset, error) {
	p = canonicalPath(p)
	if ts, ok := l.cache.Tileset(p); ok {
		return ts, nil
	}

	v, err, _ := l.group.Do("tileset\x00"+p, func() (interface{}, error) {
		// Winner of a concurrent race may already have inserted it.
		if ts, ok := l.cache.Tileset(p); ok {
			return ts, nil
		}
		data, err := l.readResource(p)
		if err != nil {
			return nil, err
		}
		ts, err := parseTileset(data, p)
		if err != nil {
			return nil, err
		}
		l.cache.InsertTileset(p, ts)
		return ts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Tileset), nil
}

// LoadTemplate loads a .tx object template through the cache, resolving
// the template's own tileset reference recursively.
func (l *Loader) LoadTemplate(p string) (*Template, error) {
	p = canonicalPath(p)
	if t, ok := l.cache.Template(p); ok {
		return t, nil
	}

	v, err, _ := l.group.Do("template\x00"+p, func() (interface{}, error) {
		if t, ok := l.cache.Template(p); ok {
			return t, nil
		}
		data, err := l.readResource(p)
		if err != nil {
			return nil, err
		}
		t, err := parseTemplate(l, data, p)
		if err != nil {
			return nil, err
		}
		l.cache.InsertTemplate(p, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Template), nil
}

// LoadWorld loads a .world descriptor. Patterns are compiled here, once.
func (l *Loader) LoadWorld(p string) (*World, error) {
	p = canonicalPath(p)
	data, err := l.readResource(p)
	if err != nil {
		return nil, err
	}
	return ParseWorld(data, p)
}

// LoadWorldMaps materializes every explicit map of a world, resolving
// filenames relative to the world file.
func (l *Loader) LoadWorldMaps(w *World) ([]*Map, error) {
	maps := make([]*Map, 0, len(w.Maps))
	for _, wm := range w.Maps {
		m, err := l.LoadMap(resolveRelative(w.Source, wm.FileName))
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}

// readResource reads a whole resource, wrapping any failure with the
// requested path.
func (l *Loader) readResource(p string) ([]byte, error) {
	if p == "" || p == "." || strings.HasSuffix(p, "/") {
		return nil, &ResourceError{Path: p, Err: ErrPathNotFile}
	}
	r, err := l.reader.OpenResource(p)
	if err != nil {
		return nil, &ResourceError{Path: p, Err: err}
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ResourceError{Path: p, Err: err}
	}
	return data, nil
}

// canonicalPath is the cache key form of a path: forward slashes, cleaned.
func canonicalPath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// resolveRelative canonicalizes a reference relative to the file that
// contains it.
func resolveRelative(source, ref string) string {
	ref = strings.ReplaceAll(ref, "\\", "/")
	if path.IsAbs(ref) {
		return path.Clean(ref)
	}
	return path.Join(path.Dir(canonicalPath(source)), ref)
}
