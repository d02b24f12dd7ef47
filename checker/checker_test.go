package checker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSource = map[string]string{
	"app.title": "My App",
	"greeting":  "Hello {{name}}",
	"farewell":  "Goodbye",
}

func validate(t *testing.T, path, raw string) Result {
	t.Helper()
	return ValidateFile(path, testSource, []byte(raw), DefaultConfig())
}

func TestValidateCleanCandidate(t *testing.T) {
	res := validate(t, "fr.json", `{
		"app.title": "Mon App",
		"greeting": "Bonjour {{name}}",
		"farewell": "Au revoir"
	}`)

	assert.True(t, res.OK())
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateReservedFilenames(t *testing.T) {
	res := validate(t, "locales/en.json", `{}`)
	require.Len(t, res.Errors, 1, "identity guard stops before any other check")
	assert.Contains(t, res.Errors[0], "source language file")

	res = validate(t, "i18n-report.json", `{}`)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "generated report")
}

func TestValidateLanguageCodeShape(t *testing.T) {
	for _, name := range []string{"DE.json", "f.json", "french.json", "pt-br.json", "de_DE.json"} {
		res := validate(t, name, `{
			"app.title": "x",
			"greeting": "y {{name}}",
			"farewell": "z"
		}`)
		require.NotEmpty(t, res.Errors, "file %s", name)
		assert.Contains(t, res.Errors[0], "invalid language code")
	}

	// Not structural: content checks still run after the code error.
	res := validate(t, "DE.json", `{"greeting": "Hallo {{name}}"}`)
	assert.Contains(t, res.Errors[0], "invalid language code")
	assert.Greater(t, len(res.Errors), 1, "missing-key errors still reported")
}

func TestValidateParseFailureShortCircuits(t *testing.T) {
	res := validate(t, "de.json", `{not json`)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "invalid JSON")
	assert.Empty(t, res.Warnings)
}

func TestValidateRootShape(t *testing.T) {
	cases := map[string]string{
		`["a", "b"]`: "array",
		`null`:       "null",
		`"hello"`:    "string",
		`42`:         "number",
	}
	for raw, typeName := range cases {
		res := validate(t, "de.json", raw)
		require.Len(t, res.Errors, 1, "raw %s", raw)
		assert.Contains(t, res.Errors[0], "root must be a JSON object")
		assert.Contains(t, res.Errors[0], typeName)
	}
}

func TestValidateMissingAndUnknownKeys(t *testing.T) {
	res := validate(t, "de.json", `{
		"app.title": "Meine App",
		"farewell": "Tschüss",
		"foo": "bar"
	}`)

	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], `"greeting"`)
	assert.Contains(t, res.Errors[0], "missing")
	assert.Contains(t, res.Errors[1], `"foo"`)
	assert.Contains(t, res.Errors[1], "unknown")
}

func TestValidateNonStringValueSkipsPerKeyChecks(t *testing.T) {
	// The number value would also trip the length ratio if treated as a
	// string; the type error must be the only finding for that key.
	res := validate(t, "de.json", `{
		"app.title": 42,
		"greeting": "Hallo {{name}}",
		"farewell": "Tschüss"
	}`)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `"app.title"`)
	assert.Contains(t, res.Errors[0], "must be a string")
	assert.Contains(t, res.Errors[0], "number")
}

func TestValidateScriptTagYieldsTwoErrors(t *testing.T) {
	res := validate(t, "de.json", `{
		"app.title": "<script>alert(1)</script>",
		"greeting": "Hallo {{name}}",
		"farewell": "Tschüss"
	}`)

	var categories []string
	for _, e := range res.Errors {
		if strings.Contains(e, "blocked content") {
			categories = append(categories, e)
		}
	}
	require.GreaterOrEqual(t, len(categories), 2)
	assert.Contains(t, categories[0], "script tag")
	assert.Contains(t, categories[1], "script closing tag")
}

func TestValidateBlockedContentCategories(t *testing.T) {
	cases := []struct {
		value    string
		category string
	}{
		{`<script src="x.js">`, "script tag"},
		{`text </script> text`, "script closing tag"},
		{`<a href="javascript:alert(1)">x</a>`, "javascript: URI"},
		{`<div onclick=doEvil()>`, "inline event handler"},
		{`<iframe src="https://evil.example">`, "iframe tag"},
		{`<img src=x onerror=alert(1)>`, "image error handler"},
		{`url(data:text/html;base64,PHNjcmlwdD4=)`, "base64 data URI"},
		{`&#106;avascript`, "HTML numeric entity"},
		{`&#x6A;avascript`, "HTML numeric entity"},
		{"abc\u202Edef", "right-to-left override"},
	}

	for _, tc := range cases {
		raw := fmt.Sprintf(`{
			"app.title": %q,
			"greeting": "Hallo {{name}}",
			"farewell": "Tschüss"
		}`, tc.value)
		res := ValidateFile("de.json", testSource, []byte(raw), DefaultConfig())

		found := false
		for _, e := range res.Errors {
			if strings.Contains(e, tc.category) {
				found = true
			}
		}
		assert.True(t, found, "value %q should trip %q, got %v", tc.value, tc.category, res.Errors)
	}
}

func TestValidateAllDetectorMatchesSurface(t *testing.T) {
	// One value tripping several categories reports each separately.
	res := validate(t, "de.json", `{
		"app.title": "<iframe src=javascript:alert(1)></iframe>",
		"greeting": "Hallo {{name}}",
		"farewell": "Tschüss"
	}`)

	joined := strings.Join(res.Errors, "\n")
	assert.Contains(t, joined, "iframe tag")
	assert.Contains(t, joined, "javascript: URI")
}

func TestValidateControlCharacters(t *testing.T) {
	res := validate(t, "de.json", `{
		"app.title": "Meine\u0000App",
		"greeting": "Hallo {{name}}",
		"farewell": "Tschüss"
	}`)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "control character")
	assert.Contains(t, res.Errors[0], "U+0000")

	// Tab, newline and carriage return are allowed.
	res = validate(t, "de.json", `{
		"app.title": "Meine\tApp\r\nZeile",
		"greeting": "Hallo {{name}}",
		"farewell": "Tschüss"
	}`)
	assert.Empty(t, res.Errors)
}

func TestValidateDroppedPlaceholder(t *testing.T) {
	res := validate(t, "fr.json", `{
		"app.title": "Mon App",
		"greeting": "Bonjour",
		"farewell": "Au revoir"
	}`)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `"greeting"`)
	assert.Contains(t, res.Errors[0], "{{name}}")
	assert.Contains(t, res.Errors[0], "missing from translation")
}

func TestValidateInjectedPlaceholder(t *testing.T) {
	res := validate(t, "fr.json", `{
		"app.title": "Mon App {{injected}}",
		"greeting": "Bonjour {{name}}",
		"farewell": "Au revoir"
	}`)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "{{injected}}")
	assert.Contains(t, res.Errors[0], "not present in source")
}

func TestValidatePlaceholderOrderInsensitive(t *testing.T) {
	source := map[string]string{"k": "{{a}} and {{b}}"}
	res := ValidateFile("fr.json", source, []byte(`{"k": "{{b}} et {{a}}"}`), DefaultConfig())

	assert.Empty(t, res.Errors, "reordered placeholders are fine")
}

func TestValidateEmptyTranslationWarns(t *testing.T) {
	res := validate(t, "de.json", `{
		"app.title": "   ",
		"greeting": "Hallo {{name}}",
		"farewell": "Tschüss"
	}`)

	assert.Empty(t, res.Errors, "blank translation is advisory only")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `"app.title"`)
	assert.Contains(t, res.Warnings[0], "empty")
}

func TestValidateEmptySourceValueNoWarning(t *testing.T) {
	source := map[string]string{"spacer": ""}
	res := ValidateFile("de.json", source, []byte(`{"spacer": ""}`), DefaultConfig())

	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings, "blank-for-blank is not suspicious")
}

func TestValidateLengthRatioWarnsButDoesNotFail(t *testing.T) {
	source := map[string]string{"k": "12345"} // length 5, ratio cap 10
	value := strings.Repeat("x", 51)          // 51 > 5*10
	raw := fmt.Sprintf(`{"k": %q}`, value)

	res := ValidateFile("de.json", source, []byte(raw), DefaultConfig())

	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `"k"`)

	// Exactly at the ratio boundary: no warning.
	raw = fmt.Sprintf(`{"k": %q}`, strings.Repeat("x", 50))
	res = ValidateFile("de.json", source, []byte(raw), DefaultConfig())
	assert.Empty(t, res.Warnings)
}

func TestValidateHardLengthCapIsError(t *testing.T) {
	source := map[string]string{"k": strings.Repeat("s", 300)}
	value := strings.Repeat("x", 2001)
	raw := fmt.Sprintf(`{"k": %q}`, value)

	res := ValidateFile("de.json", source, []byte(raw), DefaultConfig())

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "2001")
	assert.Contains(t, res.Errors[0], "2000")
	assert.Empty(t, res.Warnings, "cap error suppresses the ratio warning")
}

func TestValidateLengthCountsRunesNotBytes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxValueLength = 10
	source := map[string]string{"k": "приветик12"} // 10 runes

	raw := fmt.Sprintf(`{"k": %q}`, "приветик12") // 10 runes, 18 bytes
	res := ValidateFile("de.json", source, []byte(raw), cfg)
	assert.Empty(t, res.Errors)
}

func TestValidateSurplusKeySkipsPerKeyChecks(t *testing.T) {
	// A surplus key with unsafe content reports only the closure error;
	// per-key checks would be duplicate noise for a key being rejected.
	res := validate(t, "de.json", `{
		"app.title": "Meine App",
		"greeting": "Hallo {{name}}",
		"farewell": "Tschüss",
		"rogue": "<script>alert(1)</script>"
	}`)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `"rogue"`)
	assert.NotContains(t, strings.Join(res.Errors, "\n"), "blocked content")
}

func TestValidateFindingsAreDeterministic(t *testing.T) {
	raw := `{"farewell": 1, "app.title": 2}`

	first := validate(t, "de.json", raw)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, validate(t, "de.json", raw))
	}
}

func TestDefaultConfigTables(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "en.json", cfg.SourceFilename)
	assert.Equal(t, "i18n-report.json", cfg.ReportFilename)
	assert.Equal(t, 2000, cfg.MaxValueLength)
	assert.Equal(t, 10.0, cfg.MaxLengthRatio)
	assert.Len(t, cfg.Detectors, 9)
}
