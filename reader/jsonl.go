package reader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/hupe1980/chunkio/chunktime"
	"github.com/hupe1980/chunkio/frame"
)

// JsonList extracts data from line-delimited JSON files, where the
// `seconds` field of each object stores the timestamp. Every remaining
// top-level field becomes a column; declared columns are additionally
// extracted from the nested payload under the root key.
type JsonList struct {
	Descriptor
	rootKey string
}

// JsonListOption configures a JsonList reader.
type JsonListOption func(*JsonList)

// WithRootKey overrides the payload key declared columns are extracted
// from. The default is "value".
func WithRootKey(key string) JsonListOption {
	return func(r *JsonList) {
		r.rootKey = key
	}
}

// NewJsonList creates a line-delimited JSON reader. columns name nested
// payload fields to surface as top-level columns and may be empty.
func NewJsonList(pattern string, columns []string, optFns ...JsonListOption) *JsonList {
	r := &JsonList{
		Descriptor: NewDescriptor(pattern, columns, "jsonl"),
		rootKey:    "value",
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// Read implements Reader.
func (r *JsonList) Read(path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var objects []map[string]any
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			return nil, fmt.Errorf("reader: %s: %w", path, err)
		}
		objects = append(objects, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reader: %s: %w", path, err)
	}

	columns := r.frameColumns(objects)
	out := frame.New(columns)
	for _, obj := range objects {
		seconds, ok := obj["seconds"].(float64)
		if !ok {
			return nil, fmt.Errorf("reader: %s: record has no numeric seconds field", path)
		}
		values := make([]any, len(columns))
		for c, name := range columns {
			values[c] = obj[name]
		}
		if len(r.Columns()) > 0 {
			payload, _ := obj[r.rootKey].(map[string]any)
			for _, name := range r.Columns() {
				for c, col := range columns {
					if col == name {
						values[c] = payload[name]
					}
				}
			}
		}
		out.Append(chunktime.ToTime(seconds), values...)
	}
	return out, nil
}

// frameColumns derives the output column set: every top-level key except
// the timestamp, in sorted order, followed by any declared payload
// columns not already present.
func (r *JsonList) frameColumns(objects []map[string]any) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, obj := range objects {
		for k := range obj {
			if k == "seconds" || seen[k] {
				continue
			}
			seen[k] = true
			columns = append(columns, k)
		}
	}
	sort.Strings(columns)
	for _, name := range r.Columns() {
		if !seen[name] {
			seen[name] = true
			columns = append(columns, name)
		}
	}
	return columns
}
