// Package state holds the process-wide application state shared by the check
// scheduler and the status endpoints: the bounded log of check results and the
// time the process started.
package state
