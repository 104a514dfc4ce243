// Package targets loads the list of URLs to keep awake. The list is re-read on
// every call so edits take effect on the next check cycle without a restart.
package targets
