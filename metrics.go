package graphmaps

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives one record per lifecycle notification fired by
// a Universe. duration covers the synchronous fan-out to every attached
// observer, so it is the cost the indices add to the mutating call.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    fanout *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordAdd(count int, d time.Duration) {
//	    p.fanout.WithLabelValues("add").Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordAdd is called after OnAdd/OnAddMany fan-out.
	RecordAdd(count int, duration time.Duration)

	// RecordErase is called after OnErase/OnEraseMany fan-out.
	RecordErase(count int, duration time.Duration)

	// RecordBuild is called after OnBuild fan-out; count is the new size.
	RecordBuild(count int, duration time.Duration)

	// RecordClear is called after OnClear fan-out; count is the number of
	// items dropped.
	RecordClear(count int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(int, time.Duration)   {}
func (NoopMetricsCollector) RecordErase(int, time.Duration) {}
func (NoopMetricsCollector) RecordBuild(int, time.Duration) {}
func (NoopMetricsCollector) RecordClear(int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	AddEvents     atomic.Int64
	AddedItems    atomic.Int64
	EraseEvents   atomic.Int64
	ErasedItems   atomic.Int64
	BuildEvents   atomic.Int64
	ClearEvents   atomic.Int64
	FanoutNanos   atomic.Int64
	FanoutRecords atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(count int, duration time.Duration) {
	b.AddEvents.Add(1)
	b.AddedItems.Add(int64(count))
	b.observe(duration)
}

// RecordErase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordErase(count int, duration time.Duration) {
	b.EraseEvents.Add(1)
	b.ErasedItems.Add(int64(count))
	b.observe(duration)
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(count int, duration time.Duration) {
	b.BuildEvents.Add(1)
	b.observe(duration)
}

// RecordClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClear(count int, duration time.Duration) {
	b.ClearEvents.Add(1)
	b.observe(duration)
}

func (b *BasicMetricsCollector) observe(d time.Duration) {
	b.FanoutNanos.Add(d.Nanoseconds())
	b.FanoutRecords.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddEvents:      b.AddEvents.Load(),
		AddedItems:     b.AddedItems.Load(),
		EraseEvents:    b.EraseEvents.Load(),
		ErasedItems:    b.ErasedItems.Load(),
		BuildEvents:    b.BuildEvents.Load(),
		ClearEvents:    b.ClearEvents.Load(),
		FanoutAvgNanos: b.getAvgFanoutNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgFanoutNanos() int64 {
	count := b.FanoutRecords.Load()
	if count == 0 {
		return 0
	}
	return b.FanoutNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddEvents      int64
	AddedItems     int64
	EraseEvents    int64
	ErasedItems    int64
	BuildEvents    int64
	ClearEvents    int64
	FanoutAvgNanos int64
}
