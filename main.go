// localekit — JSON locale file manager: key-set synchronization and
// translation validation against a source-of-truth language file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/localekit/localekit/checker"
	"github.com/localekit/localekit/config"
	"github.com/localekit/localekit/i18n"
	"github.com/localekit/localekit/langmeta"
	"github.com/localekit/localekit/localefile"
	"github.com/localekit/localekit/lockfile"
	"github.com/localekit/localekit/report"
	"github.com/localekit/localekit/syncer"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.BlueString("[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.GreenString("[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.YellowString("[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("[ERROR]")+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "localekit",
		Short: "JSON locale file synchronizer and validator",
		Long: `localekit — keep per-language JSON locale files consistent with the
source-of-truth language file.

The source file (en.json by default) defines the authoritative key set.
Every other locale file is synchronized against it: missing keys are
backfilled with the source text as a placeholder, and a completion report
is generated per run. Submitted translation files are validated against
structural and content-safety rules before acceptance.

Commands:
  status      Show project info and translation statistics
  sync        Synchronize all locale files against the source file
  check       Validate translation files (exit 1 on any error)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newSyncCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("localekit version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: project info + translation stats)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show project info and translation statistics",
		Long: `Show project configuration and per-language translation progress.

Statistics are computed in memory against the current source file.
Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	proj, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	source, err := loadSource(proj)
	if err != nil {
		return err
	}

	// Project info header
	fmt.Fprintf(os.Stderr, "\n%s\n", color.BlueString("Project"))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	absRoot, _ := filepath.Abs(proj.Root)
	fmt.Fprintf(os.Stderr, "  Root:        %s\n", absRoot)
	fmt.Fprintf(os.Stderr, "  Locales:     %s\n", proj.LocalesDir)
	fmt.Fprintf(os.Stderr, "  Source:      %s (%s)\n", proj.SourceFile,
		fmt.Sprintf(i18n.N("%d key", "%d keys", len(source)), len(source)))
	fmt.Fprintf(os.Stderr, "  Report:      %s\n", proj.ReportFile)
	fmt.Fprintf(os.Stderr, "  %s:   %s\n", i18n.T("Languages"), strings.Join(proj.Languages, ", "))

	if rep, err := report.Load(proj.ReportPath()); err == nil && rep != nil {
		fmt.Fprintf(os.Stderr, "  Last sync:   %s\n", rep.GeneratedAt)
	}

	fmt.Fprintln(os.Stderr)
	showStatsTable(proj, source)
	printSuggestedCommands(proj, source)
	return nil
}

func showStatsTable(proj *config.Project, source map[string]string) {
	fmt.Fprintf(os.Stderr, "%s\n", color.BlueString("Translation Statistics"))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "\n%-22s %-12s %-10s %-9s %-8s\n", "Language", "Translated", "Untrans.", "Missing", "Percent")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	for _, lang := range proj.Languages {
		candidate := loadCandidate(proj, lang, false)
		_, stats := syncer.Sync(source, candidate)

		meta := langmeta.Resolve(lang)
		label := lang
		if meta.Name != "" && meta.Name != lang {
			label = fmt.Sprintf("%s %s (%s)", meta.Flag, meta.Name, lang)
		}

		fmt.Fprintf(os.Stderr, "%-22s %-12d %-10d %-9d %s\n",
			label, stats.Translated, stats.Untranslated, stats.Missing,
			completionString(stats.Completion))
	}

	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "Total keys: %d\n\n", len(source))
}

// completionString colors a completion percentage green/yellow/red.
func completionString(pct float64) string {
	s := fmt.Sprintf("%.1f%%", pct)
	switch {
	case pct >= 100:
		return color.GreenString(s)
	case pct >= 50:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

func printSuggestedCommands(proj *config.Project, source map[string]string) {
	fmt.Fprintf(os.Stderr, "%s\n", color.BlueString("Suggested commands"))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintln(os.Stderr, "  localekit sync                 # backfill missing keys, write report")
	fmt.Fprintf(os.Stderr, "  localekit check %s/de.json  # validate a submitted file\n", proj.LocalesDir)
	fmt.Fprintln(os.Stderr)
}

// ---------------------------------------------------------------------------
// sync (merge every locale file against the source key set)
// ---------------------------------------------------------------------------

func newSyncCmd() *cobra.Command {
	var langs []string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize locale files against the source file",
		Long: `Synchronize every configured language file against the source file.

Missing keys are backfilled with the source text as a placeholder; keys
no longer in the source are dropped. A completion report is written to
the locales directory after every run. Malformed or absent locale files
are treated as empty and rebuilt from the source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(langs)
		},
	}

	cmd.Flags().StringSliceVar(&langs, "lang", nil, "Only sync these languages (default: all configured)")

	return cmd
}

func runSync(only []string) error {
	proj, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	source, err := loadSource(proj)
	if err != nil {
		return err
	}

	lock, err := lockfile.Load(proj.Root)
	if err != nil {
		return err
	}

	languages, err := selectLanguages(proj, only)
	if err != nil {
		return err
	}

	logInfo("%s", i18n.T("Synchronizing translations"))

	rep := report.New(len(source))
	bar := progressbar.NewOptions(len(languages),
		progressbar.OptionSetDescription("sync"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, lang := range languages {
		candidate := loadCandidate(proj, lang, true)
		merged, stats := syncer.Sync(source, candidate)

		translated := translatedKeys(source, candidate)
		if stale := lock.Stale(lang, source, translated); len(stale) > 0 {
			bar.Clear()
			logWarning("%s: %d translations are stale (source text changed): %s",
				lang, len(stale), strings.Join(stale, ", "))
		}

		out := localefile.New()
		for k, v := range merged {
			out.Set(k, v)
		}
		if err := out.WriteFile(proj.LangPath(lang)); err != nil {
			return err
		}

		lock.UpdateBatch(lang, sourceSubset(source, translated))
		lock.Clean(lang, translated)
		rep.Add(lang, stats)
		bar.Add(1)
	}

	if err := rep.WriteFile(proj.ReportPath()); err != nil {
		return err
	}
	if err := lock.Save(); err != nil {
		return err
	}

	showSyncSummary(rep, languages)
	logSuccess("%s", fmt.Sprintf(i18n.T("Report written to %s"), proj.ReportPath()))
	return nil
}

func showSyncSummary(rep *report.Report, languages []string) {
	fmt.Fprintln(os.Stderr)
	for _, lang := range languages {
		stats := rep.Languages[lang]
		fmt.Fprintf(os.Stderr, "  %-6s %s (%d/%d translated, %d missing)\n",
			lang, completionString(stats.Completion),
			stats.Translated, rep.TotalKeys, stats.Missing)
	}
	fmt.Fprintln(os.Stderr)
}

// translatedKeys returns the keys genuinely translated in the candidate,
// sorted: present and different from the source value.
func translatedKeys(source, candidate map[string]string) []string {
	var keys []string
	for k, sv := range source {
		if cv, ok := candidate[k]; ok && cv != sv {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func sourceSubset(source map[string]string, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = source[k]
	}
	return out
}

func selectLanguages(proj *config.Project, only []string) ([]string, error) {
	if len(only) == 0 {
		return proj.Languages, nil
	}

	configured := make(map[string]bool, len(proj.Languages))
	for _, lang := range proj.Languages {
		configured[lang] = true
	}
	for _, lang := range only {
		if !configured[lang] {
			return nil, fmt.Errorf("language %q is not configured (known: %s)",
				lang, strings.Join(proj.Languages, ", "))
		}
	}
	return only, nil
}

// ---------------------------------------------------------------------------
// check (validate submitted translation files)
// ---------------------------------------------------------------------------

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate translation files against the source file",
		Long: `Validate submitted translation files.

Each file is checked against the source file: key-set completeness and
closure, value types, unsafe content, control characters, placeholder
preservation and length sanity. Errors block acceptance; warnings are
advisory and never affect the exit status.

Exits 0 only when no file produced any error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}

	return cmd
}

func runCheck(paths []string) error {
	proj, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	source, err := loadSource(proj)
	if err != nil {
		return err
	}

	cfg := proj.CheckerConfig()
	totalErrors := 0

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			logError("cannot read %s: %v", path, err)
			totalErrors++
			continue
		}

		res := checker.ValidateFile(path, source, raw, cfg)
		printFindings(path, res)
		totalErrors += len(res.Errors)
	}

	if totalErrors > 0 {
		return fmt.Errorf("%s", fmt.Sprintf(i18n.N("Validation failed: %d error", "Validation failed: %d errors", totalErrors), totalErrors))
	}

	logSuccess("%s", i18n.T("All files passed validation"))
	return nil
}

func printFindings(path string, res checker.Result) {
	if res.OK() && len(res.Warnings) == 0 {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.GreenString("✔"), path)
		return
	}

	mark := color.GreenString("✔")
	if !res.OK() {
		mark = color.RedString("✘")
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", mark, path)

	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "    %s %s\n", color.RedString("error:"), e)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "    %s %s\n", color.YellowString("warning:"), w)
	}
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// loadSource parses the source-of-truth file. Its absence is fatal for
// every command: without the authoritative key set nothing can be
// synchronized or validated.
func loadSource(proj *config.Project) (map[string]string, error) {
	path := proj.SourcePath()
	if !fileExists(path) {
		return nil, fmt.Errorf("%s", fmt.Sprintf(i18n.T("Source file not found: %s"), path))
	}

	f, err := localefile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return f.Entries, nil
}

// loadCandidate reads a language's existing locale file. Absent or
// malformed files degrade to an empty mapping — the synchronizer's job
// is to heal, not reject. Parse problems are surfaced as a warning when
// warn is set.
func loadCandidate(proj *config.Project, lang string, warn bool) map[string]string {
	path := proj.LangPath(lang)
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]string{}
	}

	f, err := localefile.Parse(data)
	if err != nil {
		if warn {
			logWarning("%s: unreadable, rebuilding from source (%v)", path, err)
		}
		return map[string]string{}
	}
	return f.Entries
}

// fileExists returns true if the file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
