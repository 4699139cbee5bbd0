package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FileCache stores each entry in its own file under a directory, fanned out
// into subdirectories by the first two hex digits of the hashed key.
//
// An entry file is a decimal expiry time in unix nanoseconds (0 for never),
// a newline, then the raw value.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates the directory if needed and returns a cache rooted
// there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Get implements Cache. Expired and malformed entries are removed and
// reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, ok := c.decode(raw)
	if !ok {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set implements Cache. The entry is written to a temporary file and renamed
// into place, so readers never observe a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = c.now().Add(ttl).UnixNano()
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return err
	}
	header := strconv.FormatInt(expires, 10) + "\n"
	if _, err := tmp.WriteString(header); err == nil {
		_, err = tmp.Write(data)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete implements Cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close implements Cache. It holds no resources.
func (c *FileCache) Close() error { return nil }

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Prune removes expired and malformed entries and returns how many were
// removed. Entries being written concurrently are skipped.
func (c *FileCache) Prune(ctx context.Context) (int, error) {
	removed := 0
	err := filepath.WalkDir(c.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".entry-") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if _, ok := c.decode(raw); !ok && os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	return removed, err
}

// decode splits an entry file into its value, reporting false when the entry
// is malformed or expired.
func (c *FileCache) decode(raw []byte) ([]byte, bool) {
	i := bytes.IndexByte(raw, '\n')
	if i < 0 {
		return nil, false
	}
	expires, err := strconv.ParseInt(string(raw[:i]), 10, 64)
	if err != nil {
		return nil, false
	}
	if expires != 0 && c.now().UnixNano() > expires {
		return nil, false
	}
	return raw[i+1:], true
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:])
}

var _ Cache = (*FileCache)(nil)
