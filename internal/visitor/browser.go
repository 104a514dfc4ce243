package visitor

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserVisitor renders targets in a single headless Chrome tab that lives for
// the whole process.
type BrowserVisitor struct {
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	timeout     time.Duration
}

// NewBrowserVisitor launches Chrome and opens the tab used for every visit.
func NewBrowserVisitor(timeout time.Duration, userAgent string) (*BrowserVisitor, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: launch browser: %v", ErrSession, err)
	}

	return &BrowserVisitor{
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		timeout:     timeout,
	}, nil
}

// Visit navigates the tab to url and waits for the load event.
func (v *BrowserVisitor) Visit(ctx context.Context, url string) error {
	if err := v.tabCtx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSession, err)
	}

	// Cancelling a context derived from the tab context leaves the tab open.
	visitCtx, cancel := context.WithTimeout(v.tabCtx, v.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(visitCtx, chromedp.Navigate(url))
	if err == nil {
		return nil
	}

	if sessionErr := v.tabCtx.Err(); sessionErr != nil {
		return fmt.Errorf("%w: %v", ErrSession, sessionErr)
	}
	if deadlineHit(visitCtx) {
		return ErrTimeout
	}

	return err
}

// Close shuts the browser down.
func (v *BrowserVisitor) Close() error {
	err := chromedp.Cancel(v.tabCtx)
	v.tabCancel()
	v.allocCancel()
	return err
}
