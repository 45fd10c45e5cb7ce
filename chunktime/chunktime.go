// Package chunktime implements the time base of chunked acquisition
// datasets: conversion between fractional harp seconds and wall-clock
// instants, truncation of instants to acquisition chunks, and extraction
// of chunk keys from data file paths.
package chunktime

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ChunkDuration is the duration of each acquisition chunk. It must
// evenly divide 24 hours.
var ChunkDuration = time.Hour

// ReferenceEpoch is the reference instant for harp timestamps.
var ReferenceEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// ToTime converts a harp timestamp, in fractional seconds since the
// reference epoch, to a time instant.
func ToTime(seconds float64) time.Time {
	return ReferenceEpoch.Add(time.Duration(seconds * float64(time.Second)))
}

// ToTimes converts a batch of harp timestamps to time instants.
func ToTimes(seconds []float64) []time.Time {
	times := make([]time.Time, len(seconds))
	for i, s := range seconds {
		times[i] = ToTime(s)
	}
	return times
}

// ToSeconds converts a time instant to a harp timestamp, in fractional
// seconds since the reference epoch.
func ToSeconds(t time.Time) float64 {
	return t.Sub(ReferenceEpoch).Seconds()
}

// ToSecondsBatch converts a batch of time instants to harp timestamps.
func ToSecondsBatch(times []time.Time) []float64 {
	seconds := make([]float64, len(times))
	for i, t := range times {
		seconds[i] = ToSeconds(t)
	}
	return seconds
}

// Chunk returns the whole-hour acquisition chunk for a measurement
// timestamp. Chunk-aligned instants are returned unchanged.
func Chunk(t time.Time) time.Time {
	return t.Truncate(ChunkDuration)
}

// ChunkBatch returns the acquisition chunk for each timestamp.
func ChunkBatch(times []time.Time) []time.Time {
	chunks := make([]time.Time, len(times))
	for i, t := range times {
		chunks[i] = Chunk(t)
	}
	return chunks
}

// ChunkRange returns the sequence of acquisition chunks covering the
// closed interval [start, end].
func ChunkRange(start, end time.Time) []time.Time {
	var chunks []time.Time
	for c, last := Chunk(start), Chunk(end); !c.After(last); c = c.Add(ChunkDuration) {
		chunks = append(chunks, c)
	}
	return chunks
}

// Key identifies a single acquisition chunk of one epoch.
type Key struct {
	Epoch string
	Time  time.Time
}

// Compare orders keys by epoch name first, then by chunk time.
func (k Key) Compare(other Key) int {
	if c := strings.Compare(k.Epoch, other.Epoch); c != 0 {
		return c
	}
	return k.Time.Compare(other.Time)
}

// ChunkKey returns the acquisition chunk key for a data file.
//
// Chunked files end in `..._YYYY-MM-DDTHH-MM-SS` and live two directory
// levels below their epoch directory. Files that are not themselves
// chunked (one per epoch, e.g. epoch metadata) carry no timestamp suffix;
// for those the parent directory is the epoch and names the chunk time.
func ChunkKey(file string) (Key, error) {
	parts := strings.Split(filepath.ToSlash(file), "/")
	stem := strings.TrimSuffix(parts[len(parts)-1], filepath.Ext(file))

	chunkStr := stem
	if i := strings.LastIndex(stem, "_"); i >= 0 {
		chunkStr = stem[i+1:]
	}

	epoch := ""
	if len(parts) >= 3 {
		epoch = parts[len(parts)-3]
	}
	t, err := ParseEpoch(chunkStr)
	if err != nil {
		// Not a chunked file: the parent directory names both the
		// epoch and the chunk time.
		if len(parts) < 2 {
			return Key{}, err
		}
		epoch = parts[len(parts)-2]
		if t, err = ParseEpoch(epoch); err != nil {
			return Key{}, err
		}
	}
	return Key{Epoch: epoch, Time: t}, nil
}

// ParseEpoch parses a `date T time` name such as an epoch directory
// (`2022-06-06T09-24-28`, legacy `2022-06-13T13_14_25`) or the timestamp
// suffix of a chunked file. The `-` or `_` separators in the time segment
// map to `:`.
func ParseEpoch(name string) (time.Time, error) {
	dateStr, timeStr, ok := strings.Cut(name, "T")
	if !ok {
		return time.Time{}, fmt.Errorf("chunktime: %q is not a date T time name", name)
	}
	timeStr = strings.ReplaceAll(timeStr, "-", ":")
	timeStr = strings.ReplaceAll(timeStr, "_", ":")
	t, err := time.ParseInLocation("2006-01-02T15:04:05", dateStr+"T"+timeStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("chunktime: parse %q: %w", name, err)
	}
	return t, nil
}
