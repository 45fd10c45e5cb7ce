package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minuteFrame(t0 time.Time, minutes ...int) *Frame {
	f := New([]string{"value"})
	for _, m := range minutes {
		f.Append(t0.Add(time.Duration(m)*time.Minute), m)
	}
	return f
}

func TestSliceSorted(t *testing.T) {
	t0 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	f := minuteFrame(t0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	require.True(t, f.IsSorted())

	t.Run("BoundsNeedNotBePresent", func(t *testing.T) {
		start := t0.Add(2*time.Minute + 30*time.Second)
		end := t0.Add(6*time.Minute + 30*time.Second)
		out, err := f.Slice(&start, &end, Both)
		require.NoError(t, err)
		require.Equal(t, 4, out.Len())
		assert.Equal(t, 3, out.At(0, "value"))
		assert.Equal(t, 6, out.At(3, "value"))
	})

	t.Run("Unbounded", func(t *testing.T) {
		out, err := f.Slice(nil, nil, Both)
		require.NoError(t, err)
		assert.Equal(t, 10, out.Len())
	})

	t.Run("EmptyRange", func(t *testing.T) {
		start := t0.Add(20 * time.Minute)
		out, err := f.Slice(&start, nil, Both)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Len())
	})
}

func TestSliceUnsorted(t *testing.T) {
	t0 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	// Rows 3 and 4 arrive swapped, as interleaved recorders produce.
	f := minuteFrame(t0, 0, 1, 2, 4, 3, 5, 6, 7, 8, 9)
	require.False(t, f.IsSorted())

	at := func(m int) *time.Time {
		v := t0.Add(time.Duration(m) * time.Minute)
		return &v
	}

	tests := []struct {
		name        string
		start, end  *time.Time
		expectedLen map[Inclusive]int
	}{
		{
			name:        "start only",
			start:       at(2),
			expectedLen: map[Inclusive]int{Both: 8, Left: 8, Right: 7, Neither: 7},
		},
		{
			name:        "end only",
			end:         at(4),
			expectedLen: map[Inclusive]int{Both: 4, Left: 3, Right: 4, Neither: 3},
		},
		{
			name:        "both bounds",
			start:       at(2),
			end:         at(4),
			expectedLen: map[Inclusive]int{Both: 2, Left: 1, Right: 1, Neither: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for inclusive, expected := range tt.expectedLen {
				out, err := f.Slice(tt.start, tt.end, inclusive)
				require.NoError(t, err, inclusive)
				assert.Equal(t, expected, out.Len(), inclusive)
			}
		})
	}

	t.Run("MissingBoundErrors", func(t *testing.T) {
		start := t0.Add(2*time.Minute + 30*time.Second)
		_, err := f.Slice(&start, nil, Both)
		var boundErr *BoundError
		require.ErrorAs(t, err, &boundErr)
		assert.Equal(t, start, boundErr.Bound)

		end := t0.Add(4*time.Minute + 30*time.Second)
		_, err = f.Slice(nil, &end, Both)
		require.ErrorAs(t, err, &boundErr)
	})

	t.Run("DuplicateEndUsesLastOccurrence", func(t *testing.T) {
		dup := New([]string{"value"})
		dup.Append(t0.Add(time.Minute), 1)
		dup.Append(t0, 0)
		dup.Append(t0.Add(time.Minute), 2)
		end := t0.Add(time.Minute)
		out, err := dup.Slice(nil, &end, Both)
		require.NoError(t, err)
		assert.Equal(t, 3, out.Len())
	})
}

func TestSort(t *testing.T) {
	t0 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	f := New([]string{"value"})
	f.Append(t0.Add(2*time.Minute), "b")
	f.Append(t0, "a")
	f.Append(t0.Add(2*time.Minute), "c")

	f.Sort()

	require.True(t, f.IsSorted())
	assert.Equal(t, "a", f.At(0, "value"))
	// Stable: equal instants keep insertion order.
	assert.Equal(t, "b", f.At(1, "value"))
	assert.Equal(t, "c", f.At(2, "value"))
}

func TestConcat(t *testing.T) {
	t0 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	a := New([]string{"x", "y"})
	a.Append(t0, 1, 2)
	b := New([]string{"y", "z"})
	b.Append(t0.Add(time.Minute), 3, 4)

	out := Concat(a, b)

	assert.Equal(t, []string{"x", "y", "z"}, out.Columns())
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 1, out.At(0, "x"))
	assert.Nil(t, out.At(0, "z"))
	assert.Equal(t, 3, out.At(1, "y"))
	assert.Nil(t, out.At(1, "x"))
}

func TestReindex(t *testing.T) {
	t0 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	f := minuteFrame(t0, 0, 2, 4)

	t.Run("MostRecentAtOrBefore", func(t *testing.T) {
		out, missing := f.Reindex([]time.Time{
			t0.Add(2 * time.Minute), // exact
			t0.Add(3 * time.Minute), // padded from 2
		}, NoTolerance)
		assert.Equal(t, 0, missing)
		require.Equal(t, 2, out.Len())
		assert.Equal(t, 2, out.At(0, "value"))
		assert.Equal(t, 2, out.At(1, "value"))
		assert.Equal(t, t0.Add(3*time.Minute), out.Time(1))
	})

	t.Run("BeforeFirstSampleIsMissing", func(t *testing.T) {
		out, missing := f.Reindex([]time.Time{t0.Add(-time.Second)}, NoTolerance)
		assert.Equal(t, 1, missing)
		require.Equal(t, 1, out.Len())
		assert.Nil(t, out.At(0, "value"))
	})

	t.Run("Tolerance", func(t *testing.T) {
		out, missing := f.Reindex([]time.Time{
			t0.Add(4*time.Minute + 30*time.Second),
			t0.Add(9 * time.Minute),
		}, time.Minute)
		assert.Equal(t, 1, missing)
		assert.Equal(t, 4, out.At(0, "value"))
		assert.Nil(t, out.At(1, "value"))
	})
}

func TestAppendPanicsOnWidthMismatch(t *testing.T) {
	f := New([]string{"a", "b"})
	assert.Panics(t, func() {
		f.Append(time.Now(), 1)
	})
}
