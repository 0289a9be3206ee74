package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renderfig/renderfig/pkg/diagram"
)

// probeOrder is the fixed extension priority used on lookup. The MIME type of
// an entry is recovered from its extension, so Get probes vector formats
// before raster ones.
var probeOrder = []string{"pdf", "svg", "png"}

// DirCache stores entries as files named <key>.<ext> in a single directory.
// Writes go through a temp file and rename so an interrupted run never leaves
// a torn entry behind.
type DirCache struct {
	dir string
}

// NewDirCache creates a directory-backed cache rooted at dir.
// The directory is created if it doesn't exist.
func NewDirCache(dir string) (*DirCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *DirCache) Dir() string {
	return c.dir
}

// Get probes for <key>.<ext> in the fixed extension order and returns the
// first entry found along with the MIME type implied by its extension.
func (c *DirCache) Get(ctx context.Context, key string) ([]byte, string, bool, error) {
	for _, ext := range probeOrder {
		path := filepath.Join(c.dir, key+"."+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, "", false, err
		}
		mimeType, _ := diagram.MIMEForExtension(ext)
		return data, mimeType, true, nil
	}
	return nil, "", false, nil
}

// Set writes the entry under <key>.<ext> for the extension matching mimeType.
func (c *DirCache) Set(ctx context.Context, key string, data []byte, mimeType string) error {
	ext, ok := diagram.Extension(mimeType)
	if !ok {
		return fmt.Errorf("cache: no file extension for MIME type %q", mimeType)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(c.dir, key+"."+ext)
	tmp, err := os.CreateTemp(c.dir, "."+key+"-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Close does nothing for a directory cache.
func (c *DirCache) Close() error {
	return nil
}

// Ensure DirCache implements Cache.
var _ Cache = (*DirCache)(nil)
