package chunkio

import (
	"context"
	"sort"

	"github.com/hupe1980/chunkio/chunktime"
	"github.com/hupe1980/chunkio/reader"
	"github.com/hupe1980/chunkio/store"
)

// indexEntry maps one chunk key to the file holding its data.
type indexEntry struct {
	key  chunktime.Key
	path string
}

// buildIndex enumerates the files matching a reader under the given roots
// and produces a deterministic index sorted ascending by chunk key. Roots
// are ordered by increasing priority: a later root overwrites same-key
// entries from earlier roots. Zero matches yield an empty index.
func buildIndex(ctx context.Context, roots []store.Root, r reader.Reader, epochGlob string) ([]indexEntry, error) {
	byKey := make(map[chunktime.Key]string)
	for _, root := range roots {
		paths, err := root.Glob(ctx, epochGlob, r.Pattern(), r.Extension())
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			key, err := chunktime.ChunkKey(p)
			if err != nil {
				return nil, err
			}
			byKey[key] = p
		}
	}
	entries := make([]indexEntry, 0, len(byKey))
	for key, p := range byKey {
		entries = append(entries, indexEntry{key: key, path: p})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key.Compare(entries[j].key) < 0
	})
	return entries, nil
}
