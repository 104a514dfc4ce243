// Package handler implements the HTTP handlers of the status service: the HTML
// status page, its JSON form and a websocket stream of new log lines.
package handler
