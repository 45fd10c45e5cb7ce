package reader

import (
	"github.com/hupe1980/chunkio/frame"
	"github.com/hupe1980/chunkio/harp"
)

// BitmaskEvent extracts event data matching a specific digital I/O
// bitmask. Rows whose payload has all bits of the mask set are kept and
// relabelled with a constant event tag.
//
// Columns:
//   - event (str): Unique identifier for the event code.
type BitmaskEvent struct {
	*Harp
	value uint64
	tag   string
}

// NewBitmaskEvent creates a bitmask event reader matching payloads
// against value and reporting them as tag.
func NewBitmaskEvent(pattern string, value uint64, tag string, decoder harp.Decoder) *BitmaskEvent {
	return &BitmaskEvent{
		Harp:  NewHarp(pattern, []string{"event"}, decoder),
		value: value,
		tag:   tag,
	}
}

// Read implements Reader. Each payload value is matched against the
// event identifier bits.
func (r *BitmaskEvent) Read(path string) (*frame.Frame, error) {
	data, err := r.Harp.Read(path)
	if err != nil {
		return nil, err
	}
	out := frame.New(data.Columns())
	for i := 0; i < data.Len(); i++ {
		if v, ok := toUint64(data.Row(i)[0]); ok && v&r.value == r.value {
			out.Append(data.Time(i), r.tag)
		}
	}
	return out, nil
}

// DigitalBitmask extracts the state of one or more digital I/O lines from
// event payloads. Payloads are masked and only rows where the masked
// value changed from the previous row survive (rising/falling edge
// detection); the reported cell is the boolean line state.
type DigitalBitmask struct {
	*Harp
	mask uint64
}

// NewDigitalBitmask creates a digital bitmask reader for the given mask
// and state column labels.
func NewDigitalBitmask(pattern string, mask uint64, columns []string, decoder harp.Decoder) *DigitalBitmask {
	return &DigitalBitmask{
		Harp: NewHarp(pattern, columns, decoder),
		mask: mask,
	}
}

// Read implements Reader.
func (r *DigitalBitmask) Read(path string) (*frame.Frame, error) {
	data, err := r.Harp.Read(path)
	if err != nil {
		return nil, err
	}
	out := frame.New(data.Columns())
	prev := make([]uint64, len(data.Columns()))
	for i := 0; i < data.Len(); i++ {
		state := make([]uint64, len(data.Columns()))
		changed := i == 0 // the first row has no predecessor and is always an edge
		for c, cell := range data.Row(i) {
			v, _ := toUint64(cell)
			state[c] = v & r.mask
			if i > 0 && state[c] != prev[c] {
				changed = true
			}
		}
		if changed {
			values := make([]any, len(state))
			for c, s := range state {
				values[c] = s != 0
			}
			out.Append(data.Time(i), values...)
		}
		prev = state
	}
	return out, nil
}

func toUint64(v any) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, true
	case int64:
		return uint64(v), true
	case int:
		return uint64(v), true
	case float64:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	default:
		return 0, false
	}
}
