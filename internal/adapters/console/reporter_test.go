package console

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

var german = entities.Locale{Code: "de", EnglishName: "German", NativeName: "Deutsch"}

func newTestReporter(verbose bool) (*Reporter, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return NewReporter(&buf, verbose), &buf
}

func TestReporter_LocaleLines(t *testing.T) {
	r, buf := newTestReporter(false)

	r.LocaleStarted(german)
	r.LocaleDone(output.LocaleResult{Locale: german, Leaves: 1365, Overridden: 12, Dropped: 3})
	r.LocaleFailed(german, fmt.Errorf("save: %w", errors.New("permission denied")))

	out := buf.String()
	assert.Contains(t, out, "Processing German (de) Deutsch\n")
	assert.Contains(t, out, "✓ German (de): 1,365 strings written (12 from overrides, 3 stale dropped)\n")
	assert.Contains(t, out, "✗ German (de): save: permission denied\n")
}

func TestReporter_FailureWithDomainError(t *testing.T) {
	r, buf := newTestReporter(false)

	r.LocaleFailed(german, fmt.Errorf("load: %w", domain.ErrMalformedDocument))

	assert.Contains(t, buf.String(), "The locale file is not a valid JSON object.")
}

func TestReporter_Coverage(t *testing.T) {
	r, buf := newTestReporter(false)
	missing := make([]entities.Path, 12)
	for i := range missing {
		missing[i] = entities.Path{"k", fmt.Sprint(i)}
	}

	r.Coverage(entities.Coverage{Locale: german, Total: 20, Translated: 5, Missing: missing})

	out := buf.String()
	assert.Contains(t, out, "✗ German (de): 25.0% translated (5 of 20), 12 missing, 0 stale\n")
	assert.Contains(t, out, "    missing: k.9\n")
	assert.NotContains(t, out, "k.10")
	assert.Contains(t, out, "… 2 more missing")
}

func TestReporter_Finished(t *testing.T) {
	r, buf := newTestReporter(false)

	r.Finished(output.RunSummary{
		Reference: "en",
		Results:   []output.LocaleResult{{Locale: german}},
		Failed:    map[string]error{"ja": errors.New("x")},
	})

	out := buf.String()
	assert.Contains(t, out, "1 locale prepared from en, 1 failed")
	assert.Contains(t, out, "NEXT STEPS:")
}

func TestTranslateDomainError(t *testing.T) {
	assert.Equal(t, "Something went wrong.", TranslateDomainError("nope"))
	assert.Equal(t, "", DomainErrorMessage(nil))
	assert.Equal(t, "", DomainErrorMessage(errors.New("plain")))
	assert.Equal(t, "Set DATABASE_URL to import overrides.", DomainErrorMessage(domain.ErrImportUnsupported))
}
