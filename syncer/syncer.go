// Package syncer implements locale file synchronization against the
// source-of-truth language file, equivalent to what msgmerge does for
// gettext catalogs.
package syncer

import (
	"math"
	"sort"
)

// Stats summarizes one language's translation state after a sync.
//
// Untranslated counts every key lacking a genuine translation: keys that
// were missing from the candidate as well as keys whose value is identical
// to the source value (still the copied placeholder). Missing counts only
// the keys absent from the candidate, so it is a subset of Untranslated,
// not the complement of Translated.
type Stats struct {
	Translated   int     `json:"translated"`
	Untranslated int     `json:"untranslated"`
	Missing      int     `json:"missing"`
	Completion   float64 `json:"completion"`
}

// Sync merges a candidate mapping against the source mapping.
//   - The merged mapping contains exactly the source's keys.
//   - Keys present in the candidate keep the candidate's value.
//   - Keys absent from the candidate get the source value as a placeholder.
//   - A key counts as translated only when its value differs from the
//     source value.
//
// Sync is total: it never fails, for any pair of mappings. Running it on
// its own output yields the identical mapping and stats.
func Sync(source, candidate map[string]string) (map[string]string, Stats) {
	merged := make(map[string]string, len(source))
	var stats Stats

	for _, key := range sortedKeys(source) {
		sourceValue := source[key]

		value, ok := candidate[key]
		if !ok {
			value = sourceValue
			stats.Missing++
		}
		merged[key] = value

		if ok && value != sourceValue {
			stats.Translated++
		} else {
			stats.Untranslated++
		}
	}

	stats.Completion = completion(stats.Translated, len(source))
	return merged, stats
}

// completion returns translated/total as a percentage rounded to one
// decimal place. An empty source is vacuously 100% complete.
func completion(translated, total int) float64 {
	if total == 0 {
		return 100.0
	}
	return math.Round(float64(translated)/float64(total)*1000) / 10
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
