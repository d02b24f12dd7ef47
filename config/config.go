// Package config — .localekit.yaml project configuration.
//
// A project may carry a .localekit.yaml in its root to override the
// defaults. Every field is optional; a missing file means a fully
// default configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/localekit/localekit/checker"
)

// FileName is the config file name looked up in the project root.
const FileName = ".localekit.yaml"

// DefaultLanguages is the language list used when none is configured.
var DefaultLanguages = []string{"de", "es", "fr", "it", "ja", "pl", "pt", "ru", "tr", "uk", "zh"}

var langCodeRe = regexp.MustCompile(`^[a-z]{2,5}$`)

// Project is the resolved project configuration.
type Project struct {
	// Root is the project root directory.
	Root string `yaml:"-"`
	// LocalesDir is the directory holding the locale files, relative to Root.
	LocalesDir string `yaml:"locales_dir,omitempty"`
	// SourceFile is the source-of-truth file name inside LocalesDir.
	SourceFile string `yaml:"source_file,omitempty"`
	// ReportFile is the generated report file name inside LocalesDir.
	ReportFile string `yaml:"report_file,omitempty"`
	// Languages is the list of target language codes to keep in sync.
	Languages []string `yaml:"languages,omitempty"`
	// MaxValueLength is the hard cap on a translation value's rune count.
	MaxValueLength int `yaml:"max_value_length,omitempty"`
	// MaxLengthRatio flags values longer than ratio times the source value.
	MaxLengthRatio float64 `yaml:"max_length_ratio,omitempty"`
}

// Load reads .localekit.yaml from the given root, applying defaults for
// every unset field. A missing config file is not an error.
func Load(root string) (*Project, error) {
	p := &Project{Root: root}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	// Defaults
	if p.LocalesDir == "" {
		p.LocalesDir = "locales"
	}
	if p.SourceFile == "" {
		p.SourceFile = "en.json"
	}
	if p.ReportFile == "" {
		p.ReportFile = "i18n-report.json"
	}
	if len(p.Languages) == 0 {
		p.Languages = append([]string(nil), DefaultLanguages...)
	}
	if p.MaxValueLength == 0 {
		p.MaxValueLength = 2000
	}
	if p.MaxLengthRatio == 0 {
		p.MaxLengthRatio = 10
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Validate checks the configuration for contradictions.
func (p *Project) Validate() error {
	sourceCode := trimExt(p.SourceFile)
	for _, lang := range p.Languages {
		if !langCodeRe.MatchString(lang) {
			return fmt.Errorf("invalid language code %q: must be 2-5 lowercase letters", lang)
		}
		if lang == sourceCode {
			return fmt.Errorf("source language %q listed as a sync target", lang)
		}
	}
	if p.MaxValueLength < 0 {
		return fmt.Errorf("max_value_length must be positive, got %d", p.MaxValueLength)
	}
	if p.MaxLengthRatio < 0 {
		return fmt.Errorf("max_length_ratio must be positive, got %g", p.MaxLengthRatio)
	}
	if p.SourceFile == p.ReportFile {
		return fmt.Errorf("source_file and report_file are both %q", p.SourceFile)
	}
	return nil
}

// SourcePath returns the absolute-ish path to the source language file.
func (p *Project) SourcePath() string {
	return filepath.Join(p.Root, p.LocalesDir, p.SourceFile)
}

// LangPath returns the locale file path for a language code.
func (p *Project) LangPath(lang string) string {
	return filepath.Join(p.Root, p.LocalesDir, lang+".json")
}

// ReportPath returns the generated report file path.
func (p *Project) ReportPath() string {
	return filepath.Join(p.Root, p.LocalesDir, p.ReportFile)
}

// CheckerConfig builds the validation tables for this project.
func (p *Project) CheckerConfig() checker.Config {
	cfg := checker.DefaultConfig()
	cfg.SourceFilename = p.SourceFile
	cfg.ReportFilename = p.ReportFile
	cfg.MaxValueLength = p.MaxValueLength
	cfg.MaxLengthRatio = p.MaxLengthRatio
	return cfg
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
