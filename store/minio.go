package store

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
)

// MinIORoot is a storage root whose chunk files live in a MinIO (or any
// S3-compatible) bucket. It shares the caching behavior of S3Root.
type MinIORoot struct {
	client *minio.Client
	bucket string
	prefix string
	cache  *cache
}

// NewMinIORoot creates a MinIO-backed root.
func NewMinIORoot(client *minio.Client, bucket, prefix, cacheDir string, optFns ...RemoteOption) *MinIORoot {
	o := applyRemoteOptions(optFns)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &MinIORoot{
		client: client,
		bucket: bucket,
		prefix: prefix,
		cache:  newCache(cacheDir, o.limiter),
	}
}

// Glob implements Root.
func (r *MinIORoot) Glob(ctx context.Context, epochGlob, pattern, extension string) ([]string, error) {
	var matches []string
	objects := r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{
		Prefix:    r.prefix,
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return nil, obj.Err
		}
		key := strings.TrimPrefix(obj.Key, r.prefix)
		rel, compression := splitCompression(key)
		if !matchRel(rel, epochGlob, pattern, extension) {
			continue
		}
		local, err := r.fetch(ctx, rel, compression)
		if err != nil {
			return nil, err
		}
		matches = append(matches, local)
	}
	sort.Strings(matches)
	return matches, nil
}

func (r *MinIORoot) fetch(ctx context.Context, rel, compression string) (string, error) {
	key := r.prefix + rel + compression
	return r.cache.fetch(ctx, rel, func(ctx context.Context, w io.Writer) error {
		obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return err
		}
		defer obj.Close()
		return decompress(w, obj, compression)
	})
}
