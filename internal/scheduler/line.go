package scheduler

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/angeloszaimis/wake-web/internal/visitor"
)

const (
	MarkerVisited = "✅"
	MarkerFailed  = "❌"

	OutcomeVisited = "visited"

	timestampLayout = "2006-01-02 15:04:05"
)

// FormatLine renders a log line as "[YYYY-MM-DD HH:MM:SS] <marker> <subject> -> <outcome>".
func FormatLine(at time.Time, marker, subject, outcome string) string {
	return fmt.Sprintf("[%s] %s %s -> %s", at.Format(timestampLayout), marker, subject, outcome)
}

func visitLine(at time.Time, url string, err error) string {
	if err != nil {
		return FormatLine(at, MarkerFailed, url, "error: "+visitor.Reason(err))
	}
	return FormatLine(at, MarkerVisited, url, OutcomeVisited)
}

func loadFailureLine(at time.Time, source string, err error) string {
	return FormatLine(at, MarkerFailed, source, "error: "+loadReason(err))
}

// loadReason strips the source path, which the line already carries.
func loadReason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	if inner := errors.Unwrap(err); inner != nil {
		return inner.Error()
	}
	return err.Error()
}
