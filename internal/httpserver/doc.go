// Package httpserver runs the status HTTP server with validated listen
// addresses and graceful shutdown.
package httpserver
