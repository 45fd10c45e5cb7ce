package chunkio

import (
	"github.com/hupe1980/chunkio/frame"
	"github.com/hupe1980/chunkio/harp"
	"github.com/hupe1980/chunkio/reader"
)

// Error types surfaced by Load, aliased here so callers can match them
// without importing every subpackage.
//
//   - BoundError: a requested time bound is not present as an exact
//     index entry of a genuinely sorted result. On an unsorted result the
//     same condition is downgraded to a warning and the full table is
//     returned sorted ascending instead.
//   - ConfigNotFoundError, UnsupportedConfigError, MissingKeyError:
//     pose model configuration failures, each separately diagnosable.
//   - ColumnCountError: a payload width mismatch reported by the binary
//     decoder.
//
// All non-recoverable errors propagate to the caller unmodified; none are
// retried.
type (
	BoundError             = frame.BoundError
	ConfigNotFoundError    = reader.ConfigNotFoundError
	UnsupportedConfigError = reader.UnsupportedConfigError
	MissingKeyError        = reader.MissingKeyError
	ColumnCountError       = harp.ColumnCountError
)
