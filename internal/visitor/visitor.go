package visitor

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	EngineHTTP    = "http"
	EngineBrowser = "browser"
)

const DefaultUserAgent = "wake-web/1.0 (+keep-alive)"

var (
	// ErrTimeout is returned when a visit does not complete within the timeout.
	ErrTimeout = errors.New("timeout")

	// ErrSession is wrapped by errors that make the session unusable.
	ErrSession = errors.New("visitor session unavailable")
)

// Visitor visits one URL per call, bounded by its own timeout.
type Visitor interface {
	Visit(ctx context.Context, url string) error
	Close() error
}

// Options configures a Visitor.
type Options struct {
	Engine    string
	Timeout   time.Duration
	UserAgent string
}

// New creates the session for the configured engine. Failing to start a
// browser session returns an error wrapping ErrSession.
func New(opts Options) (Visitor, error) {
	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("visitor timeout must be positive, got %s", opts.Timeout)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	switch opts.Engine {
	case EngineHTTP, "":
		return NewHTTPVisitor(opts.Timeout, opts.UserAgent), nil
	case EngineBrowser:
		return NewBrowserVisitor(opts.Timeout, opts.UserAgent)
	default:
		return nil, fmt.Errorf("unknown visitor engine %q", opts.Engine)
	}
}

// Reason renders a visit error as a short human-readable string.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrTimeout) {
		return ErrTimeout.Error()
	}

	return err.Error()
}

func deadlineHit(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}
