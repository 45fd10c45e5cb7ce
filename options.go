package chunkio

import (
	"log/slog"
	"time"

	"github.com/hupe1980/chunkio/frame"
)

type options struct {
	start     *time.Time
	end       *time.Time
	inclusive frame.Inclusive
	times     []time.Time
	hasTimes  bool
	tolerance time.Duration
	epochGlob string
	logger    *Logger
	metrics   MetricsCollector
}

// Option configures a Load call.
type Option func(*options)

// WithStart sets the left bound of the time range to extract.
func WithStart(t time.Time) Option {
	return func(o *options) {
		o.start = &t
	}
}

// WithEnd sets the right bound of the time range to extract.
func WithEnd(t time.Time) Option {
	return func(o *options) {
		o.end = &t
	}
}

// WithInclusive selects whether the start and end bounds are inclusive or
// exclusive. The default is frame.Both.
func WithInclusive(inclusive frame.Inclusive) Option {
	return func(o *options) {
		o.inclusive = inclusive
	}
}

// WithTimes switches Load to a point-in-time query: the result holds one
// row per requested timestamp, resolved to the most recent sample at or
// before it. The timestamps may be unsorted and contain duplicates; an
// empty set yields an empty frame with the reader's columns.
func WithTimes(times ...time.Time) Option {
	return func(o *options) {
		o.times = times
		o.hasTimes = true
	}
}

// WithTolerance bounds the distance between a requested timestamp and its
// nearest preceding sample for a point-query match; matches farther away
// are left missing. The default accepts any distance.
func WithTolerance(tolerance time.Duration) Option {
	return func(o *options) {
		o.tolerance = tolerance
	}
}

// WithEpochFilter restricts the query to epoch directories matching the
// given glob pattern.
func WithEpochFilter(glob string) Option {
	return func(o *options) {
		o.epochGlob = glob
	}
}

// WithLogger configures structured logging for the call. Pass nil to
// disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets
// it. Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for the call.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		inclusive: frame.Both,
		tolerance: frame.NoTolerance,
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
