// Package reader implements the stateless decoders for raw chunk files in
// a chunked acquisition dataset.
//
// Every reader is an immutable descriptor (file-search pattern, column
// labels, extension) plus a Read operation producing a time-indexed
// frame. Readers hold no mutable state; the pose reader derives its
// column layout per call because it depends on an external model
// configuration.
package reader

import (
	"github.com/hupe1980/chunkio/frame"
)

// Reader decodes raw chunk files of one data stream.
type Reader interface {
	// Pattern is the glob used to find the stream's files, usually in the
	// form `<Device>_<DataStream>`.
	Pattern() string
	// Columns are the column labels of decoded frames. Readers that
	// resolve their layout per file return nil.
	Columns() []string
	// Extension of data file pathnames, without the leading dot.
	Extension() string
	// Read decodes the file at path into a time-indexed frame.
	Read(path string) (*frame.Frame, error)
}

// Descriptor carries the shared immutable traits of a reader. Embed it to
// satisfy the descriptor part of the Reader interface.
type Descriptor struct {
	pattern   string
	columns   []string
	extension string
}

// NewDescriptor creates a reader descriptor.
func NewDescriptor(pattern string, columns []string, extension string) Descriptor {
	return Descriptor{pattern: pattern, columns: columns, extension: extension}
}

// Pattern implements Reader.
func (d Descriptor) Pattern() string { return d.pattern }

// Columns implements Reader.
func (d Descriptor) Columns() []string { return d.columns }

// Extension implements Reader.
func (d Descriptor) Extension() string { return d.extension }
