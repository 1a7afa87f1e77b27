package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

var _ output.Reporter = (*Reporter)(nil)

// maxListed caps the paths printed per category in a coverage report.
const maxListed = 10

// Reporter prints progress for humans. It is safe for concurrent use.
type Reporter struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool

	ok   *color.Color
	fail *color.Color
	warn *color.Color
	bold *color.Color
}

func NewReporter(w io.Writer, verbose bool) *Reporter {
	return &Reporter{
		w:       w,
		verbose: verbose,
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		bold:    color.New(color.Bold),
	}
}

func (r *Reporter) LocaleStarted(loc entities.Locale) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "Processing %s %s\n", loc, loc.NativeName)
}

func (r *Reporter) LocaleDone(res output.LocaleResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ok.Fprint(r.w, "✓ ")
	fmt.Fprintf(r.w, "%s: %s strings written", res.Locale, humanize.Comma(int64(res.Leaves)))
	var parts []string
	if res.Overridden > 0 {
		parts = append(parts, humanize.Comma(int64(res.Overridden))+" from overrides")
	}
	if res.Kept > 0 {
		parts = append(parts, humanize.Comma(int64(res.Kept))+" kept")
	}
	if res.Dropped > 0 {
		parts = append(parts, humanize.Comma(int64(res.Dropped))+" stale dropped")
	}
	if len(parts) > 0 {
		fmt.Fprintf(r.w, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(r.w)
}

func (r *Reporter) LocaleFailed(loc entities.Locale, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail.Fprint(r.w, "✗ ")
	fmt.Fprintf(r.w, "%s: %v\n", loc, err)
	if msg := DomainErrorMessage(err); msg != "" {
		fmt.Fprintf(r.w, "  %s\n", msg)
	}
}

func (r *Reporter) Coverage(c entities.Coverage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mark, col := "✓ ", r.ok
	if !c.Complete() {
		mark, col = "✗ ", r.fail
	}
	col.Fprint(r.w, mark)
	fmt.Fprintf(r.w, "%s: %.1f%% translated (%s of %s)",
		c.Locale, c.Percent(), humanize.Comma(int64(c.Translated)), humanize.Comma(int64(c.Total)))
	fmt.Fprintf(r.w, ", %d missing, %d stale", len(c.Missing), len(c.Stale))
	if len(c.Unresolved) > 0 {
		fmt.Fprintf(r.w, ", %d unresolved", len(c.Unresolved))
	}
	fmt.Fprintln(r.w)
	r.listPaths("missing", c.Missing)
	r.listPaths("unresolved", c.Unresolved)
	if r.verbose {
		r.listPaths("stale", c.Stale)
		r.listPaths("untranslated", c.Untranslated)
	}
}

func (r *Reporter) listPaths(label string, paths []entities.Path) {
	for i, p := range paths {
		if i == maxListed {
			r.warn.Fprintf(r.w, "    … %d more %s\n", len(paths)-maxListed, label)
			return
		}
		fmt.Fprintf(r.w, "    %s: %s\n", label, p)
	}
}

func (r *Reporter) Finished(s output.RunSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w)
	r.bold.Fprintln(r.w, strings.Repeat("=", 60))
	fmt.Fprintf(r.w, "%s prepared from %s", pluralLocales(len(s.Results)), s.Reference)
	if len(s.Failed) > 0 {
		r.fail.Fprintf(r.w, ", %d failed", len(s.Failed))
	}
	fmt.Fprintln(r.w)
	r.bold.Fprintln(r.w, "NEXT STEPS:")
	fmt.Fprintln(r.w, "Untranslated strings still hold the reference text. Fill them in by")
	fmt.Fprintln(r.w, "hand or through a translation service, then run `localesync sync` to")
	fmt.Fprintln(r.w, "pick up reference changes without losing that work.")
}

func pluralLocales(n int) string {
	if n == 1 {
		return "1 locale"
	}
	return fmt.Sprintf("%d locales", n)
}
