// Package lockfile implements localekit.lock — a lock file that tracks
// MD5 checksums of the source value each translation was last synced
// against. When a source value changes after a key was translated, the
// existing translation is reported as stale on the next sync instead of
// silently passing as complete.
//
// The lock file is stored in the project root as localekit.lock.
package lockfile

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// LockFileName is the default lock file name.
const LockFileName = "localekit.lock"

// Version is the lock file format version.
const Version = 1

// LockFile represents the localekit.lock file structure.
type LockFile struct {
	Version   int                          `yaml:"version"`
	Checksums map[string]map[string]string `yaml:"checksums"` // lang -> key -> md5 of source value

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// Load reads a lock file from the given directory.
// Returns an empty lock file if the file doesn't exist.
func Load(dir string) (*LockFile, error) {
	path := filepath.Join(dir, LockFileName)
	lf := &LockFile{
		Version:   Version,
		Checksums: make(map[string]map[string]string),
		path:      path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lf, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, lf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	lf.path = path

	if lf.Checksums == nil {
		lf.Checksums = make(map[string]map[string]string)
	}

	return lf, nil
}

// Save writes the lock file to disk.
func (lf *LockFile) Save() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.path == "" {
		return fmt.Errorf("lock file path not set")
	}

	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}

	if err := os.WriteFile(lf.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", lf.path, err)
	}

	return nil
}

// Path returns the lock file path.
func (lf *LockFile) Path() string {
	return lf.path
}

// Hash computes the MD5 hex digest of a string.
func Hash(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}

// Stale returns the translated keys whose source value changed since the
// key was last recorded for this language, sorted. Keys never recorded
// are not stale — they were translated against the current source.
func (lf *LockFile) Stale(lang string, source map[string]string, translatedKeys []string) []string {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	recorded := lf.Checksums[lang]
	if recorded == nil {
		return nil
	}

	var stale []string
	for _, key := range translatedKeys {
		oldHash, ok := recorded[key]
		if !ok {
			continue
		}
		if oldHash != Hash(source[key]) {
			stale = append(stale, key)
		}
	}
	sort.Strings(stale)
	return stale
}

// UpdateBatch records the source-value checksums for a language's
// translated keys after a successful sync.
func (lf *LockFile) UpdateBatch(lang string, sourceValues map[string]string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.Checksums[lang] == nil {
		lf.Checksums[lang] = make(map[string]string)
	}
	for key, value := range sourceValues {
		lf.Checksums[lang][key] = Hash(value)
	}
}

// Clean removes entries for keys that are no longer translated (or no
// longer exist). This prevents stale entries from accumulating.
func (lf *LockFile) Clean(lang string, translatedKeys []string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	existing := lf.Checksums[lang]
	if existing == nil {
		return
	}

	valid := make(map[string]bool, len(translatedKeys))
	for _, k := range translatedKeys {
		valid[k] = true
	}

	for k := range existing {
		if !valid[k] {
			delete(existing, k)
		}
	}
}

// Stats returns the number of languages and total tracked keys.
func (lf *LockFile) Stats() (languages, keys int) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	languages = len(lf.Checksums)
	for _, m := range lf.Checksums {
		keys += len(m)
	}
	return
}

// Languages returns the tracked language codes, sorted.
func (lf *LockFile) Languages() []string {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	langs := make([]string, 0, len(lf.Checksums))
	for l := range lf.Checksums {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
