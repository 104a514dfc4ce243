// Package logger builds the process-wide structured logger. Check results are
// written through it too, so every recorded log line reaches standard output.
// Production environments get JSON, everything else human-readable text.
package logger
