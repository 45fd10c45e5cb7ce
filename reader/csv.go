package reader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/chunkio/chunktime"
	"github.com/hupe1980/chunkio/frame"
)

// Csv extracts data from comma-separated text files. The first column of
// each record stores the timestamp, in fractional seconds since the harp
// reference epoch; the first line is a header and is skipped.
type Csv struct {
	Descriptor
}

// NewCsv creates a CSV reader with the given pattern and column labels.
func NewCsv(pattern string, columns []string) *Csv {
	return &Csv{Descriptor: NewDescriptor(pattern, columns, "csv")}
}

// Read implements Reader. An empty file yields a zero-row frame with the
// declared columns.
func (r *Csv) Read(path string) (*frame.Frame, error) {
	records, err := readCsvRecords(path)
	if err != nil {
		return nil, err
	}
	out := frame.New(r.Columns())
	for _, record := range records {
		seconds, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("reader: %s: bad timestamp %q: %w", path, record[0], err)
		}
		values := make([]any, len(r.Columns()))
		for c := range values {
			if c+1 < len(record) {
				values[c] = inferCell(record[c+1])
			}
		}
		out.Append(chunktime.ToTime(seconds), values...)
	}
	return out, nil
}

// readCsvRecords returns the data records of a CSV file with the header
// line removed. An empty file yields no records.
func readCsvRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reader: %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// inferCell parses a CSV cell as a float when possible, mirroring the
// numeric inference of the upstream tooling, and keeps it as a string
// otherwise.
func inferCell(s string) any {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

// NewSubject creates a reader for metadata of subjects entering and
// exiting the environment.
//
// Columns:
//   - id (str): Unique identifier of a subject in the environment.
//   - weight (float): Weight measurement of the subject on entering or
//     exiting the environment.
//   - event (str): Event type. Can be one of `Enter`, `Exit` or `Remain`.
func NewSubject(pattern string) *Csv {
	return NewCsv(pattern, []string{"id", "weight", "event"})
}

// NewLog creates a reader for message log data.
//
// Columns:
//   - priority (str): Priority level of the message.
//   - type (str): Type of the log message.
//   - message (str): Log message data. Can be structured using tab
//     separated values.
func NewLog(pattern string) *Csv {
	return NewCsv(pattern, []string{"priority", "type", "message"})
}

// Video extracts video frame metadata.
//
// Columns:
//   - hw_counter (int): Hardware frame counter value for the current frame.
//   - hw_timestamp (int): Internal camera timestamp for the current frame.
//   - _frame, _path, _epoch: provenance columns locating each frame in
//     its source video file.
type Video struct {
	Descriptor
}

// NewVideo creates a video metadata reader.
func NewVideo(pattern string) *Video {
	return &Video{Descriptor: NewDescriptor(
		pattern,
		[]string{"hw_counter", "hw_timestamp", "_frame", "_path", "_epoch"},
		"csv",
	)}
}

// Read implements Reader.
func (r *Video) Read(path string) (*frame.Frame, error) {
	records, err := readCsvRecords(path)
	if err != nil {
		return nil, err
	}
	videoPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".avi"
	epoch := ""
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) >= 3 {
		epoch = parts[len(parts)-3]
	}
	out := frame.New(r.Columns())
	for i, record := range records {
		seconds, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("reader: %s: bad timestamp %q: %w", path, record[0], err)
		}
		values := make([]any, len(r.Columns()))
		for c := 0; c < 2 && c+1 < len(record); c++ {
			values[c] = inferCell(record[c+1])
		}
		values[2] = i
		values[3] = videoPath
		values[4] = epoch
		out.Append(chunktime.ToTime(seconds), values...)
	}
	return out, nil
}
