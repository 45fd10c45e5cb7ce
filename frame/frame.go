// Package frame implements the time-indexed result table returned by
// chunk readers and queries.
//
// A Frame holds ordered rows under a fixed column set, each row stamped
// with a time instant. Rows are kept in insertion order; sortedness is a
// property of the data, not an invariant, since independent recorders may
// interleave out-of-order timestamps across chunk files.
package frame

import (
	"fmt"
	"sort"
	"time"
)

// NoTolerance disables the tolerance check during Reindex: any preceding
// sample matches regardless of distance.
const NoTolerance = time.Duration(-1)

// Inclusive selects which bounds of a time-range slice are inclusive.
type Inclusive int

const (
	// Both includes rows equal to either bound.
	Both Inclusive = iota
	// Left drops the final row when it equals the end bound exactly.
	Left
	// Right drops the first row when it equals the start bound exactly.
	Right
	// Neither drops rows equal to either bound.
	Neither
)

func (i Inclusive) String() string {
	switch i {
	case Both:
		return "both"
	case Left:
		return "left"
	case Right:
		return "right"
	case Neither:
		return "neither"
	default:
		return fmt.Sprintf("Inclusive(%d)", int(i))
	}
}

// BoundError reports a slice bound that is not present as an exact index
// entry of an unsorted frame.
type BoundError struct {
	Bound time.Time
}

func (e *BoundError) Error() string {
	return fmt.Sprintf("frame: bound %s not present in index", e.Bound.Format(time.RFC3339Nano))
}

// Frame is an ordered, time-indexed table.
type Frame struct {
	columns []string
	index   []time.Time
	rows    [][]any
}

// New creates an empty frame with the given column set.
func New(columns []string) *Frame {
	return &Frame{columns: append([]string(nil), columns...)}
}

// Columns returns the column labels.
func (f *Frame) Columns() []string {
	return f.columns
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Append adds a row at the given instant. The number of values must match
// the column set.
func (f *Frame) Append(t time.Time, values ...any) {
	if len(values) != len(f.columns) {
		panic(fmt.Sprintf("frame: %d values for %d columns", len(values), len(f.columns)))
	}
	f.index = append(f.index, t)
	f.rows = append(f.rows, values)
}

// Time returns the instant of row i.
func (f *Frame) Time(i int) time.Time {
	return f.index[i]
}

// Times returns the full time index.
func (f *Frame) Times() []time.Time {
	return f.index
}

// Row returns the values of row i.
func (f *Frame) Row(i int) []any {
	return f.rows[i]
}

// At returns the value of the named column in row i, or nil when the
// column does not exist or the cell is missing.
func (f *Frame) At(i int, column string) any {
	for c, name := range f.columns {
		if name == column {
			return f.rows[i][c]
		}
	}
	return nil
}

// IsSorted reports whether the time index is non-decreasing.
func (f *Frame) IsSorted() bool {
	for i := 1; i < len(f.index); i++ {
		if f.index[i].Before(f.index[i-1]) {
			return false
		}
	}
	return true
}

// Sort stably reorders the rows ascending by time.
func (f *Frame) Sort() {
	order := make([]int, len(f.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return f.index[order[a]].Before(f.index[order[b]])
	})
	index := make([]time.Time, len(f.index))
	rows := make([][]any, len(f.rows))
	for i, j := range order {
		index[i] = f.index[j]
		rows[i] = f.rows[j]
	}
	f.index = index
	f.rows = rows
}

// Concat concatenates frames in order, aligning columns by name. Columns
// missing from a frame yield nil cells. A nil result column set follows
// first-seen order across the inputs.
func Concat(frames ...*Frame) *Frame {
	var columns []string
	seen := make(map[string]int)
	for _, fr := range frames {
		for _, c := range fr.columns {
			if _, ok := seen[c]; !ok {
				seen[c] = len(columns)
				columns = append(columns, c)
			}
		}
	}
	out := New(columns)
	for _, fr := range frames {
		for i, row := range fr.rows {
			values := make([]any, len(columns))
			for c, name := range fr.columns {
				values[seen[name]] = row[c]
			}
			out.Append(fr.index[i], values...)
		}
	}
	return out
}

// Reindex resamples the frame onto the given instants using most-recent
// sample at-or-before semantics. A requested instant farther than
// tolerance from its nearest preceding sample yields an all-missing row;
// pass NoTolerance to accept any distance. The frame must be ascending by
// time. The second result is the number of all-missing rows emitted.
func (f *Frame) Reindex(times []time.Time, tolerance time.Duration) (*Frame, int) {
	out := New(f.columns)
	missing := 0
	for _, t := range times {
		// First row strictly after t; the match is the row before it.
		i := sort.Search(len(f.index), func(i int) bool {
			return f.index[i].After(t)
		})
		if i == 0 || (tolerance >= 0 && t.Sub(f.index[i-1]) > tolerance) {
			out.Append(t, make([]any, len(f.columns))...)
			missing++
			continue
		}
		out.Append(t, f.rows[i-1]...)
	}
	return out, missing
}

// Slice filters the frame to the closed time range [start, end]; a nil
// bound is unbounded. The inclusivity mode then drops boundary rows that
// equal a bound exactly.
//
// On a sorted index the bounds need not be present. On an unsorted index
// a given bound must match an index entry exactly; otherwise a BoundError
// is returned.
func (f *Frame) Slice(start, end *time.Time, inclusive Inclusive) (*Frame, error) {
	lo, hi := 0, len(f.rows) // [lo, hi)
	if f.IsSorted() {
		if start != nil {
			lo = sort.Search(len(f.index), func(i int) bool {
				return !f.index[i].Before(*start)
			})
		}
		if end != nil {
			hi = sort.Search(len(f.index), func(i int) bool {
				return f.index[i].After(*end)
			})
		}
	} else {
		if start != nil {
			i, ok := f.first(*start)
			if !ok {
				return nil, &BoundError{Bound: *start}
			}
			lo = i
		}
		if end != nil {
			i, ok := f.last(*end)
			if !ok {
				return nil, &BoundError{Bound: *end}
			}
			hi = i + 1
		}
	}
	if hi < lo {
		hi = lo
	}

	out := New(f.columns)
	out.index = append(out.index, f.index[lo:hi]...)
	out.rows = append(out.rows, f.rows[lo:hi]...)
	if out.Len() == 0 || inclusive == Both {
		return out, nil
	}
	dropFirst := start != nil && out.index[0].Equal(*start) &&
		(inclusive == Right || inclusive == Neither)
	dropLast := end != nil && out.index[out.Len()-1].Equal(*end) &&
		(inclusive == Left || inclusive == Neither)
	if dropFirst {
		out.index = out.index[1:]
		out.rows = out.rows[1:]
	}
	if dropLast && out.Len() > 0 {
		out.index = out.index[:out.Len()-1]
		out.rows = out.rows[:out.Len()-1]
	}
	return out, nil
}

func (f *Frame) first(t time.Time) (int, bool) {
	for i, v := range f.index {
		if v.Equal(t) {
			return i, true
		}
	}
	return 0, false
}

func (f *Frame) last(t time.Time) (int, bool) {
	for i := len(f.index) - 1; i >= 0; i-- {
		if f.index[i].Equal(t) {
			return i, true
		}
	}
	return 0, false
}
