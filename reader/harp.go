package reader

import (
	"errors"

	"github.com/hupe1980/chunkio/frame"
	"github.com/hupe1980/chunkio/harp"
)

// Harp extracts data from raw binary files encoded using the harp
// protocol. The byte-level decoding is delegated to the configured
// harp.Decoder.
type Harp struct {
	Descriptor
	decoder harp.Decoder
}

// NewHarp creates a harp reader with the given pattern, column labels and
// binary decoder.
func NewHarp(pattern string, columns []string, decoder harp.Decoder) *Harp {
	return &Harp{
		Descriptor: NewDescriptor(pattern, columns, "bin"),
		decoder:    decoder,
	}
}

// Read implements Reader.
func (r *Harp) Read(path string) (*frame.Frame, error) {
	return r.decode(path, r.Columns())
}

func (r *Harp) decode(path string, columns []string) (*frame.Frame, error) {
	if r.decoder == nil {
		return nil, errors.New("reader: no harp decoder configured")
	}
	return r.decoder.Decode(path, columns)
}

// NewHeartbeat creates a reader for periodic heartbeat events.
//
// Columns:
//   - second (int): The whole second corresponding to the heartbeat, in seconds.
func NewHeartbeat(pattern string, decoder harp.Decoder) *Harp {
	return NewHarp(pattern, []string{"second"}, decoder)
}

// NewEncoder creates a reader for magnetic encoder data.
//
// Columns:
//   - angle (float): Absolute angular position, in radians, of the magnetic encoder.
//   - intensity (float): Intensity of the magnetic field.
func NewEncoder(pattern string, decoder harp.Decoder) *Harp {
	return NewHarp(pattern, []string{"angle", "intensity"}, decoder)
}

// NewPosition creates a reader for 2D position tracking data of a
// specific camera.
//
// Columns:
//   - x (float): x-coordinate of the object center of mass.
//   - y (float): y-coordinate of the object center of mass.
//   - angle (float): angle, in radians, of the ellipse fit to the object.
//   - major (float): length, in pixels, of the major axis of the ellipse.
//   - minor (float): length, in pixels, of the minor axis of the ellipse.
//   - area (float): number of pixels in the object mass.
//   - id (float): unique tracking ID of the object in a frame.
func NewPosition(pattern string, decoder harp.Decoder) *Harp {
	return NewHarp(pattern, []string{"x", "y", "angle", "major", "minor", "area", "id"}, decoder)
}
