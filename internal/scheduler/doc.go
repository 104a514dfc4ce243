// Package scheduler runs the recurring check cycle: load the target list,
// visit every target in order and record one log line per result.
//
// The first cycle runs as soon as the scheduler starts. Cycles never overlap;
// a tick that fires while a cycle is still running is dropped.
package scheduler
