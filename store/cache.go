package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// cache fills a local directory with remote objects, mirroring their
// relative layout. Concurrent fills of the same object are deduplicated
// and remote reads can be rate limited.
type cache struct {
	dir     string
	group   singleflight.Group
	limiter *rate.Limiter
}

func newCache(dir string, limiter *rate.Limiter) *cache {
	return &cache{dir: dir, limiter: limiter}
}

// fetch materializes the object stored under rel (the logical,
// uncompressed relative path) by invoking fill with a writer, unless a
// cached copy already exists. It returns the local path.
func (c *cache) fetch(ctx context.Context, rel string, fill func(ctx context.Context, w io.Writer) error) (string, error) {
	local := filepath.Join(c.dir, filepath.FromSlash(rel))
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	_, err, _ := c.group.Do(rel, func() (any, error) {
		// Re-check under the flight lock: a concurrent fetch may have
		// completed while this call was queued.
		if _, err := os.Stat(local); err == nil {
			return nil, nil
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
			return nil, err
		}
		tmp, err := os.CreateTemp(filepath.Dir(local), filepath.Base(local)+".fill*")
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())
		if err := fill(ctx, tmp); err != nil {
			tmp.Close()
			return nil, err
		}
		if err := tmp.Close(); err != nil {
			return nil, err
		}
		return nil, os.Rename(tmp.Name(), local)
	})
	if err != nil {
		return "", err
	}
	return local, nil
}

// splitCompression splits a remote object key into its logical relative
// path and compression suffix. Chunk objects may be stored zstd- or
// lz4-compressed; the cache holds them decompressed.
func splitCompression(key string) (rel, compression string) {
	switch ext := path.Ext(key); ext {
	case ".zst", ".lz4":
		return strings.TrimSuffix(key, ext), ext
	default:
		return key, ""
	}
}

// decompress copies r to w, expanding the given compression suffix.
func decompress(w io.Writer, r io.Reader, compression string) error {
	switch compression {
	case "":
		_, err := io.Copy(w, r)
		return err
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return err
		}
		defer zr.Close()
		_, err = io.Copy(w, zr)
		return err
	case ".lz4":
		_, err := io.Copy(w, lz4.NewReader(r))
		return err
	default:
		return fmt.Errorf("store: unsupported compression %q", compression)
	}
}
