// Package status renders the live status report: process uptime and the most
// recent check log lines, oldest first. Rendering only reads application state
// and never waits for a running check cycle.
package status
