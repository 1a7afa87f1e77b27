package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"localesync/internal/application"
	"localesync/internal/domain/entities"
)

func TestMeasure(t *testing.T) {
	ref := doc(t, `{"nav": {"home": "Home", "about": "About"}, "title": "Movies", "tagline": "Watch", "limit": 20}`)
	working := doc(t, `{"nav": {"home": "Startseite", "about": "About"}, "title": "Filme", "legacy": "Alt", "limit": 20}`)

	c := application.Measure(ref, working)

	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 2, c.Translated)
	assert.Equal(t, []string{"nav.about"}, strs(c.Untranslated))
	assert.Equal(t, []string{"tagline"}, strs(c.Missing))
	assert.Equal(t, []string{"legacy"}, strs(c.Stale))
	assert.InDelta(t, 50.0, c.Percent(), 0.001)
	assert.False(t, c.Complete())
}

func TestMeasure_NoWorkingDocument(t *testing.T) {
	ref := doc(t, `{"nav": {"home": "Home"}, "title": "Movies"}`)

	c := application.Measure(ref, nil)

	assert.Equal(t, 2, c.Total)
	assert.Equal(t, []string{"nav.home", "title"}, strs(c.Missing))
	assert.Zero(t, c.Translated)
}

func TestMeasure_ShapeMismatch(t *testing.T) {
	ref := doc(t, `{"nav": {"home": "Home"}, "title": "Movies"}`)
	working := doc(t, `{"nav": "Navigation", "title": {"short": "Filme"}}`)

	c := application.Measure(ref, working)

	assert.Equal(t, []string{"nav.home", "title"}, strs(c.Missing))
	assert.Equal(t, []string{"nav", "title.short"}, strs(c.Stale))
}

func strs(paths []entities.Path) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.String())
	}
	return out
}
