// Package fmtcache remembers which inputs are already formatted so repeated
// `prim fmt` runs can skip them.
package fmtcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"prim/internal/format"
)

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// Entry marks one (content, options, version) triple as formatted.
type Entry struct {
	Schema  uint16 `msgpack:"schema"`
	Path    string `msgpack:"path"`
	Size    int    `msgpack:"size"`
	Version string `msgpack:"version"`
	Stored  int64  `msgpack:"stored"` // unix seconds
}

// Cache is a directory of msgpack entries keyed by Digest.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir returns a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fmtcache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key hashes content together with the msgpack encoding of opts and the
// tool version. Any option or version change yields a different key.
func Key(content []byte, opts format.Options, version string) (Digest, error) {
	encOpts, err := msgpack.Marshal(&opts)
	if err != nil {
		return Digest{}, fmt.Errorf("fmtcache: encode options: %w", err)
	}
	h := sha256.New()
	_, _ = h.Write([]byte(version))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(encOpts)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "fmt", hexKey[:2], hexKey+".mp")
}

// Put records key as formatted.
func (c *Cache) Put(key Digest, entry *Entry) error {
	if c == nil {
		return nil
	}
	if entry == nil {
		entry = &Entry{}
	}
	entry.Schema = schemaVersion
	if entry.Stored == 0 {
		entry.Stored = time.Now().Unix()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Get loads the entry for key. Entries of another schema count as misses.
func (c *Cache) Get(key Digest, out *Entry) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var entry Entry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return false, fmt.Errorf("fmtcache: corrupt entry %s: %w", key, err)
	}
	if entry.Schema != schemaVersion {
		return false, nil
	}
	if out != nil {
		*out = entry
	}
	return true, nil
}

// Has reports whether key is recorded. Read errors count as misses.
func (c *Cache) Has(key Digest) bool {
	ok, err := c.Get(key, nil)
	return ok && err == nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
