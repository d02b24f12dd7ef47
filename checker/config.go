package checker

import "regexp"

// Detector is a single unsafe-content pattern. A match in a translation
// value is a blocking error naming the category.
type Detector struct {
	Category string
	Pattern  *regexp.Regexp
}

// Config holds the fixed validation tables. Construct with DefaultConfig
// and override fields per project; the checker itself reads no ambient
// state.
type Config struct {
	// SourceFilename is the reserved source-of-truth file name (e.g. en.json).
	SourceFilename string
	// ReportFilename is the reserved generated-report file name.
	ReportFilename string
	// MaxValueLength is the hard cap on a value's rune count.
	MaxValueLength int
	// MaxLengthRatio is the candidate/source length ratio above which a
	// value is flagged as suspiciously inflated.
	MaxLengthRatio float64
	// Detectors is the ordered unsafe-content battery.
	Detectors []Detector
}

// DefaultConfig returns the standard validation tables.
func DefaultConfig() Config {
	return Config{
		SourceFilename: "en.json",
		ReportFilename: "i18n-report.json",
		MaxValueLength: 2000,
		MaxLengthRatio: 10,
		Detectors:      DefaultDetectors(),
	}
}

// DefaultDetectors returns the standard unsafe-content detectors, in
// reporting order. Translations are rendered into HTML contexts by
// consuming applications, so anything that could smuggle markup or
// script is rejected outright.
func DefaultDetectors() []Detector {
	return []Detector{
		{"script tag", regexp.MustCompile(`(?i)<\s*script\b`)},
		{"script closing tag", regexp.MustCompile(`(?i)<\s*/\s*script\b`)},
		{"javascript: URI", regexp.MustCompile(`(?i)javascript\s*:`)},
		{"inline event handler", regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)},
		{"iframe tag", regexp.MustCompile(`(?i)<\s*iframe\b`)},
		{"image error handler", regexp.MustCompile(`(?i)<\s*img[^>]*\bonerror\b`)},
		{"base64 data URI", regexp.MustCompile(`(?i)data:[^,;]*;base64`)},
		{"HTML numeric entity", regexp.MustCompile(`&#(?:[0-9]+|[xX][0-9a-fA-F]+);`)},
		{"right-to-left override character", regexp.MustCompile("\u202E")},
	}
}
