package targets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader supplies the current target list.
type Loader interface {
	Load() ([]string, error)
	Source() string
}

// LoadError reports that the target source could not be read or parsed.
// A failed load never returns a partial list.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("read target list %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FileLoader reads targets from a file on disk. Files ending in .yaml or .yml
// hold a YAML sequence of URLs; anything else is plain text, one URL per line.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Source returns the file path.
func (l *FileLoader) Source() string {
	return l.path
}

// Load reads and parses the file. Surrounding whitespace is trimmed and blank
// lines are dropped; order and duplicates are preserved.
func (l *FileLoader) Load() ([]string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, &LoadError{Source: l.path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		return parseYAML(l.path, data)
	default:
		return ParseText(string(data)), nil
	}
}

// ParseText splits raw text into targets. Lines starting with # are comments.
func ParseText(raw string) []string {
	urls := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}

	return urls
}

func parseYAML(source string, data []byte) ([]string, error) {
	var entries []string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		urls = append(urls, entry)
	}

	return urls, nil
}

// DefaultPath returns weblist.txt next to the running executable, falling back
// to the working directory when the executable path is unknown.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "weblist.txt"
	}

	return filepath.Join(filepath.Dir(exe), "weblist.txt")
}
