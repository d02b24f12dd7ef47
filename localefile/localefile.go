// Package localefile implements reading and writing of flat JSON locale files.
//
// The expected file format is a single JSON object mapping keys to strings:
//
//	{
//	    "app.title": "My App",
//	    "greeting": "Hello {{name}}"
//	}
//
// One file per language, named <code>.json (e.g. de.json). The source
// language file carries the authoritative key set; values equal to the
// source value are considered untranslated placeholders.
package localefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// File represents a parsed locale file.
type File struct {
	Entries map[string]string // key -> translated value
	// keys preserves the original key order from the file.
	keys []string
}

// New returns an empty locale file.
func New() *File {
	return &File{Entries: make(map[string]string)}
}

// ParseFile reads and parses a JSON locale file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses JSON locale data, preserving key order via json.Decoder.
// The root must be an object and every value must be a string.
func Parse(data []byte) (*File, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	// Read opening brace.
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", t)
	}

	f := New()

	for dec.More() {
		// Read key.
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}

		// Read value.
		vt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		value, ok := vt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string value for key %q, got %T", key, vt)
		}

		if _, dup := f.Entries[key]; !dup {
			f.keys = append(f.keys, key)
		}
		f.Entries[key] = value
	}

	return f, nil
}

// Keys returns the keys in their original file order.
func (f *File) Keys() []string {
	if len(f.keys) > 0 {
		return f.keys
	}

	// Fallback: sorted keys.
	keys := make([]string, 0, len(f.Entries))
	for k := range f.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores a value, appending the key to the order if it is new.
func (f *File) Set(key, value string) {
	if _, ok := f.Entries[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.Entries[key] = value
}

// WriteFile writes the locale file to disk in the canonical format.
func (f *File) WriteFile(path string) error {
	data := f.Marshal()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Marshal produces the canonical JSON output: sorted keys, 4-space
// indentation, trailing newline. Sorted output keeps diffs stable across
// sync runs regardless of the order keys arrived in.
func (f *File) Marshal() []byte {
	keys := make([]string, 0, len(f.Entries))
	for k := range f.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{\n")
	for i, k := range keys {
		b.WriteString(fmt.Sprintf("    %s: %s", jsonString(k), jsonString(f.Entries[k])))
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")

	return []byte(b.String())
}

// jsonString returns a JSON-encoded string value (with proper escaping).
func jsonString(s string) string {
	return strconv.Quote(s)
}
