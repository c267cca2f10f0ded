package graphmaps

import "log/slog"

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	capacity         int
}

// Option configures a Universe.
//
// Indices take no options of their own: they inherit the logger of the
// universe they attach to.
type Option func(*options)

// WithMetricsCollector configures a collector for notification fan-out.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &graphmaps.BasicMetricsCollector{}
//	u := graphmaps.New(graphmaps.WithMetricsCollector(metrics))
//	// ... use u ...
//	stats := metrics.GetStats()
//	fmt.Printf("Adds: %d, Avg fan-out: %dns\n", stats.AddedItems, stats.FanoutAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for lifecycle events.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := graphmaps.NewJSONLogger(slog.LevelDebug)
//	u := graphmaps.New(graphmaps.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCapacity pre-sizes the slot tables for the expected number of items.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
