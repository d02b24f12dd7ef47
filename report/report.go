// Package report implements the generated completion report written after
// every sync run.
//
// The report is derived output only: it is rewritten from scratch each
// run and must never be hand-edited or submitted as a translation (the
// checker rejects it by filename).
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/localekit/localekit/syncer"
)

// Report summarizes one sync run across all languages.
type Report struct {
	GeneratedAt string                  `json:"generated_at"`
	TotalKeys   int                     `json:"total_keys"`
	Languages   map[string]syncer.Stats `json:"languages"`
}

// New returns an empty report stamped with the current UTC time.
func New(totalKeys int) *Report {
	return &Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		TotalKeys:   totalKeys,
		Languages:   make(map[string]syncer.Stats),
	}
}

// Add records one language's stats.
func (r *Report) Add(lang string, stats syncer.Stats) {
	r.Languages[lang] = stats
}

// Load reads a previously generated report. Returns nil without error if
// the file does not exist.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if r.Languages == nil {
		r.Languages = make(map[string]syncer.Stats)
	}
	return &r, nil
}

// WriteFile writes the report as indented JSON. Language keys serialize
// in sorted order, so repeated runs over unchanged inputs differ only in
// the timestamp.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
