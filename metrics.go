package chunkio

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement this interface to integrate with monitoring systems
// like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each Load operation. chunks is the
	// number of chunk files decoded, rows the number of result rows,
	// duration the total time taken; err is nil if successful.
	RecordLoad(chunks, rows int, duration time.Duration, err error)

	// RecordOutOfOrder is called when a range query falls back to the
	// full sorted table because the index is out of order.
	RecordOutOfOrder()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordOutOfOrder()                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external
// dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadTotalNanos atomic.Int64
	ChunksDecoded  atomic.Int64
	RowsReturned   atomic.Int64
	OutOfOrder     atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(chunks, rows int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	b.ChunksDecoded.Add(int64(chunks))
	b.RowsReturned.Add(int64(rows))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordOutOfOrder implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOutOfOrder() {
	b.OutOfOrder.Add(1)
}
