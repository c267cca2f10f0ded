// Package graphmaps provides value-indexed maps over a dynamic set of items.
//
// A Universe owns the items. Indices attach to it and keep themselves
// consistent as items are added and erased, so algorithms that repeatedly
// ask "which items currently have value v" never scan the universe.
//
// # Indices
//
//	rangeid     dense ids 0..n-1 for the live items, with inverse lookup
//	boolindex   partition of the items into true and false
//	intindex    buckets of items by small non-negative int value
//	valueindex  buckets of items by any ordered value, values in order
//	crossref    invertible value map with per-value counts
//
// Every index returns its buckets as an ItemSet from Collect, so buckets of
// different indices can be intersected or merged directly.
//
// # Quick Start
//
//	u := graphmaps.New()
//	visited := boolindex.New(u, false)
//	defer visited.Close()
//
//	items, _ := u.AddMany(3)
//	visited.Set(items[1], true)
//	for item := range visited.False() {
//	    fmt.Println(item)
//	}
//
// # Notifications
//
// The universe notifies attached observers synchronously from the mutating
// call. Add notifications fire after the new items are live; erase and
// clear notifications fire while the doomed items are still readable.
// Resize replaces the universe wholesale and fires OnClear then OnBuild.
//
// # Observability
//
// Lifecycle events are logged through log/slog (see WithLogger) and the
// cost of each notification fan-out is reported to a MetricsCollector
// (see WithMetricsCollector). Both default to no-ops.
//
// # Concurrency
//
// A universe and its indices are single-threaded. Callers that share them
// across goroutines must serialize every call, reads included.
package graphmaps
