package chunkio

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/hupe1980/chunkio/chunktime"
	"github.com/hupe1980/chunkio/frame"
	"github.com/hupe1980/chunkio/reader"
	"github.com/hupe1980/chunkio/store"
)

// Load extracts chunk data for one stream from the prioritized roots of a
// dataset.
//
// All chunk files matching the reader are indexed on every call. A subset
// of the data can be loaded by specifying a time range (WithStart,
// WithEnd, WithInclusive) or a list of timestamps used to index the data
// on file (WithTimes, WithTolerance). Range results are returned in chunk
// order; when a requested bound cannot be sliced from an out-of-order
// index, the bounds are ignored and the full table is returned sorted
// ascending instead (see frame.BoundError).
func Load(ctx context.Context, roots []store.Root, r reader.Reader, optFns ...Option) (*frame.Frame, error) {
	o := applyOptions(optFns)
	began := time.Now()

	data, chunks, err := load(ctx, roots, r, &o)
	rows := 0
	if data != nil {
		rows = data.Len()
	}
	o.metrics.RecordLoad(chunks, rows, time.Since(began), err)
	o.logger.LogLoad(ctx, r.Pattern(), chunks, rows, time.Since(began), err)
	return data, err
}

func load(ctx context.Context, roots []store.Root, r reader.Reader, o *options) (*frame.Frame, int, error) {
	index, err := buildIndex(ctx, roots, r, o.epochGlob)
	if err != nil {
		return nil, 0, err
	}
	if o.hasTimes {
		return loadAt(index, r, o)
	}
	return loadRange(ctx, index, r, o)
}

// loadAt answers a point-in-time query: one result row per requested
// timestamp, resolved to the most recent sample at or before it.
func loadAt(index []indexEntry, r reader.Reader, o *options) (*frame.Frame, int, error) {
	groups := groupByChunk(o.times)
	chunks := 0

	var results []*frame.Frame
	for _, group := range groups {
		// First index entry at or after the group's chunk key.
		i := sort.Search(len(index), func(i int) bool {
			return !index[i].key.Time.Before(group.key)
		})
		var data *frame.Frame
		if i < len(index) {
			decoded, err := r.Read(index[i].path)
			if err != nil {
				return nil, chunks, err
			}
			chunks++
			data = decoded
		} else {
			data = frame.New(r.Columns())
		}
		result, missing := data.Reindex(group.times, o.tolerance)
		if missing > 0 && i > 0 {
			// A last known sample may sit just before the chunk
			// boundary: stitch the preceding chunk in front and
			// resolve again.
			previous, err := r.Read(index[i-1].path)
			if err != nil {
				return nil, chunks, err
			}
			chunks++
			result, _ = frame.Concat(previous, data).Reindex(group.times, o.tolerance)
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return frame.New(r.Columns()), chunks, nil
	}
	return frame.Concat(results...), chunks, nil
}

// loadRange answers an interval query: all chunks overlapping the
// requested range are decoded in key order and the concatenation is
// sliced to the exact bounds.
func loadRange(ctx context.Context, index []indexEntry, r reader.Reader, o *options) (*frame.Frame, int, error) {
	if o.start != nil || o.end != nil {
		// Chunk-granularity prefilter; a chunk partially inside the
		// range is still read in full.
		filtered := index[:0:0]
		for _, entry := range index {
			c := chunktime.Chunk(entry.key.Time)
			if o.start != nil && c.Before(chunktime.Chunk(*o.start)) {
				continue
			}
			if o.end != nil && c.After(chunktime.Chunk(*o.end)) {
				continue
			}
			filtered = append(filtered, entry)
		}
		index = filtered
	}
	if len(index) == 0 {
		return frame.New(r.Columns()), 0, nil
	}

	decoded := make([]*frame.Frame, 0, len(index))
	for _, entry := range index {
		data, err := r.Read(entry.path)
		if err != nil {
			return nil, len(decoded), err
		}
		decoded = append(decoded, data)
	}
	data := frame.Concat(decoded...)
	if o.start == nil && o.end == nil {
		return data, len(decoded), nil
	}

	result, err := data.Slice(o.start, o.end, o.inclusive)
	if err != nil {
		var bound *frame.BoundError
		if errors.As(err, &bound) && !data.IsSorted() {
			// Independent recorders may interleave out-of-order
			// timestamps across files; exact-bound slicing needs
			// sortedness. Trade bound precision for availability.
			o.logger.LogOutOfOrder(ctx, r.Pattern())
			o.metrics.RecordOutOfOrder()
			data.Sort()
			return data, len(decoded), nil
		}
		return nil, len(decoded), err
	}
	return result, len(decoded), nil
}

type chunkGroup struct {
	key   time.Time
	times []time.Time
}

// groupByChunk buckets requested timestamps by their chunk, visiting
// groups in ascending chunk order while preserving the caller's order
// within each group.
func groupByChunk(times []time.Time) []chunkGroup {
	// Keyed by unix nanos so equal instants in different locations land
	// in the same group.
	byKey := make(map[int64]chunkGroup)
	for _, t := range times {
		key := chunktime.Chunk(t)
		group := byKey[key.UnixNano()]
		group.key = key
		group.times = append(group.times, t)
		byKey[key.UnixNano()] = group
	}
	groups := make([]chunkGroup, 0, len(byKey))
	for _, group := range byKey {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].key.Before(groups[j].key)
	})
	return groups
}
