// Package checker validates candidate locale files against the source
// language file before they are accepted into a project.
//
// Validation runs an ordered battery of checks and collects findings at
// two severities: errors block acceptance, warnings are advisory only.
// Structural failures (unparsable JSON, wrong root shape) short-circuit
// the battery since nothing further can be known about the file; all
// other checks run to completion so every problem surfaces in one pass.
package checker

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// langCodeRe is the accepted shape for a language identifier.
var langCodeRe = regexp.MustCompile(`^[a-z]{2,5}$`)

// placeholderRe matches double-brace interpolation tokens like {{name}}.
var placeholderRe = regexp.MustCompile(`\{\{[^{}]*\}\}`)

// Result aggregates the findings of one validation run, in the order
// the checks were evaluated.
type Result struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the file passed validation. Warnings never fail a file.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateFile validates raw candidate file content against the source
// mapping. The path is only used for identity checks (reserved filenames,
// language code shape); the content is parsed from raw, never read from
// disk.
func ValidateFile(path string, source map[string]string, raw []byte, cfg Config) Result {
	var res Result

	// Reserved filenames must never be submitted as translations.
	base := filepath.Base(path)
	switch base {
	case cfg.SourceFilename:
		res.errorf("%s is the source language file and must not be validated as a translation", base)
		return res
	case cfg.ReportFilename:
		res.errorf("%s is a generated report, not a translation file", base)
		return res
	}

	code := strings.TrimSuffix(base, filepath.Ext(base))
	if !langCodeRe.MatchString(code) {
		res.errorf("invalid language code %q: must be 2-5 lowercase letters", code)
		// Not structural: the content can still be checked.
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		res.errorf("invalid JSON: %v", err)
		return res
	}

	candidate, ok := parsed.(map[string]any)
	if !ok {
		res.errorf("root must be a JSON object, got %s", jsonTypeName(parsed))
		return res
	}

	// Key-set completeness: every source key must be present.
	for _, key := range sortedKeys(source) {
		if _, ok := candidate[key]; !ok {
			res.errorf("missing key %q", key)
		}
	}

	// Key-set closure: unknown keys are never silently ignored.
	for _, key := range sortedAnyKeys(candidate) {
		if _, ok := source[key]; !ok {
			res.errorf("unknown key %q not present in %s", key, cfg.SourceFilename)
		}
	}

	// Per-key checks, only for keys known to the source (surplus keys were
	// already reported above).
	for _, key := range sortedAnyKeys(candidate) {
		sourceValue, ok := source[key]
		if !ok {
			continue
		}

		value, ok := candidate[key].(string)
		if !ok {
			res.errorf("key %q: value must be a string, got %s", key, jsonTypeName(candidate[key]))
			continue
		}

		ctx := keyContext{key: key, source: sourceValue, value: value, cfg: &cfg}
		for _, check := range keyChecks {
			check(ctx, &res)
		}
	}

	return res
}

// keyContext is the shared context one per-key check operates on.
type keyContext struct {
	key    string
	source string
	value  string
	cfg    *Config
}

// keyChecks is the ordered battery applied to every string value present
// in both mappings. Checks are independent; adding one is appending here.
var keyChecks = []func(keyContext, *Result){
	checkEmptiness,
	checkBlockedContent,
	checkControlChars,
	checkPlaceholders,
	checkLength,
}

// checkEmptiness flags a blank translation of a non-blank source value.
// Advisory only: some labels are intentionally blank in some languages.
func checkEmptiness(ctx keyContext, res *Result) {
	if strings.TrimSpace(ctx.value) == "" && strings.TrimSpace(ctx.source) != "" {
		res.warnf("key %q: translation is empty but source is not", ctx.key)
	}
}

// checkBlockedContent runs every unsafe-content detector against the value.
// All matches surface, each as its own error.
func checkBlockedContent(ctx keyContext, res *Result) {
	for _, d := range ctx.cfg.Detectors {
		if d.Pattern.MatchString(ctx.value) {
			res.errorf("key %q: blocked content: %s", ctx.key, d.Category)
		}
	}
}

// checkControlChars rejects non-printable control characters other than
// tab, newline and carriage return.
func checkControlChars(ctx keyContext, res *Result) {
	for _, r := range ctx.value {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			res.errorf("key %q: control character U+%04X not allowed", ctx.key, r)
			return
		}
	}
}

// checkPlaceholders compares the {{...}} token sets of source and
// translation. Dropped tokens break interpolation at runtime; new tokens
// would inject interpolation points the source never had.
func checkPlaceholders(ctx keyContext, res *Result) {
	sourceTokens := placeholderSet(ctx.source)
	valueTokens := placeholderSet(ctx.value)

	for _, tok := range missingFrom(sourceTokens, valueTokens) {
		res.errorf("key %q: placeholder %s missing from translation", ctx.key, tok)
	}
	for _, tok := range missingFrom(valueTokens, sourceTokens) {
		res.errorf("key %q: placeholder %s not present in source", ctx.key, tok)
	}
}

// checkLength enforces the absolute length cap, then warns on suspicious
// inflation relative to the source. Lengths are rune counts so multibyte
// scripts are not penalized for their encoding.
func checkLength(ctx keyContext, res *Result) {
	n := utf8.RuneCountInString(ctx.value)
	if n > ctx.cfg.MaxValueLength {
		res.errorf("key %q: value is %d characters, above the %d limit", ctx.key, n, ctx.cfg.MaxValueLength)
		return
	}

	srcLen := utf8.RuneCountInString(ctx.source)
	if srcLen > 0 && float64(n) > float64(srcLen)*ctx.cfg.MaxLengthRatio {
		res.warnf("key %q: value is %d characters, over %gx the source length %d",
			ctx.key, n, ctx.cfg.MaxLengthRatio, srcLen)
	}
}

// placeholderSet extracts the set of placeholder tokens from a value.
func placeholderSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range placeholderRe.FindAllString(s, -1) {
		set[tok] = true
	}
	return set
}

// missingFrom returns the tokens of want absent from have, sorted.
func missingFrom(want, have map[string]bool) []string {
	var out []string
	for tok := range want {
		if !have[tok] {
			out = append(out, tok)
		}
	}
	sort.Strings(out)
	return out
}

// jsonTypeName names a decoded JSON value's type for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
