// Package store provides the storage roots a chunked dataset is read
// from.
//
// A dataset can be spread over several roots with increasing priority:
// the same chunk may exist in more than one root and the entry from the
// highest-priority root wins. Roots can live on the local filesystem or
// in object storage (S3, MinIO); remote roots materialize matching chunk
// files in a local cache directory that mirrors the remote layout, so
// path-derived chunk keys keep working.
package store

import (
	"context"
	"path"
	"strings"
)

// Root locates the raw files of one storage root.
type Root interface {
	// Glob returns local filesystem paths of the files matching
	// <epochGlob>/**/<pattern>.<extension> under the root. epochGlob
	// constrains the top-level epoch directory and may be empty to match
	// every epoch.
	Glob(ctx context.Context, epochGlob, pattern, extension string) ([]string, error)
}

// Locals wraps local directories as a prioritized root list.
func Locals(dirs ...string) []Root {
	roots := make([]Root, len(dirs))
	for i, dir := range dirs {
		roots[i] = NewLocal(dir)
	}
	return roots
}

// matchRel reports whether a slash-separated path relative to a root
// matches the epoch glob and the base-name pattern.
func matchRel(rel, epochGlob, pattern, extension string) bool {
	comps := strings.Split(rel, "/")
	base := comps[len(comps)-1]
	ok, err := path.Match(pattern+"."+extension, base)
	if err != nil || !ok {
		return false
	}
	if epochGlob == "" || epochGlob == "**" {
		return true
	}
	if len(comps) < 2 {
		return false
	}
	ok, err = path.Match(epochGlob, comps[0])
	return err == nil && ok
}
