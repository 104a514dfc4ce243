// Package metrics collects counters about check cycles and target visits.
//
// Events flow through a buffered channel into a collector goroutine, so the
// scheduler never waits on metrics bookkeeping:
//   - cycles started and ticks skipped because a cycle was still running
//   - target list load failures
//   - per-target visits, failures and visit durations (average, P50, P95)
//
// Example usage:
//
//	collector := metrics.NewCollector(256, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:     metrics.EventVisitCompleted,
//		Target:   "https://example.com",
//		Duration: 850 * time.Millisecond,
//		Success:  true,
//	})
//
//	snapshot := collector.Snapshot()
//
// Pending events are drained when the context is cancelled.
package metrics
