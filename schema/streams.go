// Package schema composes devices and data streams into dataset models.
//
// A Stream binds one name to one reader; groups flatten nested streams
// depth-first. A Device roots the tree with a top-level pattern (its own
// name unless overridden) which is substituted into every descendant
// reader pattern at construction time: a leaf's emitted name is its own
// declared name, never prefixed by ancestors — only the pattern baked
// into the reader reflects ancestor context.
package schema

import (
	"github.com/hupe1980/chunkio/reader"
)

// Stream is one named source of decoded tabular data backed by a reader.
type Stream struct {
	Name   string
	Reader reader.Reader
}

// Node builds the streams of one device subtree for a device pattern.
type Node func(pattern string) []Stream

// NewStream creates a node emitting a single named stream whose reader is
// built from the device pattern.
func NewStream(name string, factory func(pattern string) reader.Reader) Node {
	return func(pattern string) []Stream {
		return []Stream{{Name: name, Reader: factory(pattern)}}
	}
}

// Group creates a node flattening its children depth-first.
func Group(nodes ...Node) Node {
	return func(pattern string) []Stream {
		var streams []Stream
		for _, node := range nodes {
			streams = append(streams, node(pattern)...)
		}
		return streams
	}
}

// Device is a named grouping of one or more streams sharing a pattern
// prefix.
type Device struct {
	name    string
	streams []Stream
}

// DeviceOption configures a Device.
type DeviceOption func(*deviceOptions)

type deviceOptions struct {
	path string
}

// WithPath overrides the top-level pattern substituted into descendant
// readers; the default is the device name.
func WithPath(path string) DeviceOption {
	return func(o *deviceOptions) {
		o.path = path
	}
}

// NewDevice creates a device rooting the given nodes.
func NewDevice(name string, nodes []Node, optFns ...DeviceOption) *Device {
	o := deviceOptions{path: name}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	var streams []Stream
	for _, node := range nodes {
		streams = append(streams, node(o.path)...)
	}
	return &Device{name: name, streams: streams}
}

// Name returns the device name.
func (d *Device) Name() string {
	return d.name
}

// Streams returns every leaf stream of the device in declaration order.
func (d *Device) Streams() []Stream {
	return d.streams
}

// Reader returns the reader of the named stream.
func (d *Device) Reader(name string) (reader.Reader, bool) {
	for _, s := range d.streams {
		if s.Name == name {
			return s.Reader, true
		}
	}
	return nil, false
}

// Single returns the device's reader when it is bound to exactly one
// stream; such a device behaves as the stream itself.
func (d *Device) Single() (reader.Reader, bool) {
	if len(d.streams) == 1 {
		return d.streams[0].Reader, true
	}
	return nil, false
}
