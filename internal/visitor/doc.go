// Package visitor performs single, time-bounded visits to a URL.
//
// Two engines are available:
//
//   - http: a plain GET that reads the whole response body
//   - browser: a headless Chrome tab driven through the DevTools protocol
//
// A Visitor is a long-lived session reused for every visit. It is not safe for
// concurrent use; callers visit targets one at a time. Any visit that finishes
// before the timeout counts as a success, whatever the response status.
//
// Errors wrapping ErrSession mean the session itself is gone and no further
// visits can succeed. Every other error is a failure of that one visit.
package visitor
