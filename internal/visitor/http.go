package visitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPVisitor visits targets with a shared http.Client. Redirects are followed
// and the body is drained so the remote host serves the full page.
type HTTPVisitor struct {
	client    *http.Client
	transport *http.Transport
	timeout   time.Duration
	userAgent string
}

// NewHTTPVisitor creates an HTTP session with its own connection pool.
func NewHTTPVisitor(timeout time.Duration, userAgent string) *HTTPVisitor {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &HTTPVisitor{
		client:    &http.Client{Transport: transport},
		transport: transport,
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Visit issues a GET for url and reads the response to the end.
func (v *HTTPVisitor) Visit(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", v.userAgent)

	res, err := v.client.Do(req)
	if err != nil {
		if deadlineHit(ctx) {
			return ErrTimeout
		}
		return err
	}
	defer res.Body.Close()

	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		if deadlineHit(ctx) {
			return ErrTimeout
		}
		return fmt.Errorf("read body: %w", err)
	}

	return nil
}

// Close releases idle connections.
func (v *HTTPVisitor) Close() error {
	v.transport.CloseIdleConnections()
	return nil
}
