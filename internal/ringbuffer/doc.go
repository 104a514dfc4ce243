// Package ringbuffer provides a fixed-capacity, concurrency-safe FIFO buffer.
// When the buffer is full, appending evicts the oldest element.
package ringbuffer
