// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It covers the status server port, the target list
// location, the check interval, visit timeout and engine, and the size of the
// in-memory log.
package config
