// Package harp defines the contract for decoding raw binary files
// produced by harp acquisition devices.
//
// The byte-level register protocol is decoded by an external component;
// this package only fixes the interface the chunk readers program
// against. A decoder receives the file path and the column labels to
// assign to the register payload, and returns a table whose time index is
// the message timestamp converted from fractional seconds since the harp
// reference epoch.
package harp

import (
	"fmt"

	"github.com/hupe1980/chunkio/frame"
)

// Decoder decodes one harp binary file into a time-indexed frame with the
// given column labels.
type Decoder interface {
	Decode(path string, columns []string) (*frame.Frame, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string, columns []string) (*frame.Frame, error)

// Decode implements Decoder.
func (fn DecoderFunc) Decode(path string, columns []string) (*frame.Frame, error) {
	return fn(path, columns)
}

// ColumnCountError reports a mismatch between the requested column labels
// and the register payload width found on file. Readers that probe
// multiple file layouts rely on this error to retry under an alternative
// column set.
type ColumnCountError struct {
	Path     string
	Expected int
	Actual   int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("harp: %s: payload width %d does not fit %d columns", e.Path, e.Actual, e.Expected)
}
