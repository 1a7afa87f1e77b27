package output

import "localesync/internal/domain/entities"

// LocaleResult describes what a run wrote for one locale.
type LocaleResult struct {
	Locale     entities.Locale
	Leaves     int
	Overridden int // leaves taken from the override batch
	Kept       int // leaves kept from the existing working document
	Dropped    int // stale leaves removed from the existing working document
}

// RunSummary aggregates one scaffold or sync run.
type RunSummary struct {
	Reference string
	Results   []LocaleResult
	Failed    map[string]error
}

// Reporter receives progress as locales are processed. Implementations must
// be safe for concurrent use.
type Reporter interface {
	LocaleStarted(locale entities.Locale)
	LocaleDone(result LocaleResult)
	LocaleFailed(locale entities.Locale, err error)
	Coverage(coverage entities.Coverage)
	Finished(summary RunSummary)
}
