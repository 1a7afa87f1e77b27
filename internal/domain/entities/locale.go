package entities

import "fmt"

// Locale labels one working document. It carries no behavior.
type Locale struct {
	Code        string
	EnglishName string
	NativeName  string
}

func (l Locale) String() string {
	if l.EnglishName == "" {
		return l.Code
	}
	return fmt.Sprintf("%s (%s)", l.EnglishName, l.Code)
}

// Coverage summarises how far a working document has been translated.
type Coverage struct {
	Locale       Locale
	Total        int    // leaves in the reference
	Translated   int    // leaves whose text differs from the reference
	Untranslated []Path // leaves still holding the reference text
	Missing      []Path // reference leaves absent from the working document
	Stale        []Path // working leaves absent from the reference
	Unresolved   []Path // reference paths an i18n lookup cannot find
}

// Complete reports whether every reference leaf is present and resolvable.
func (c Coverage) Complete() bool {
	return len(c.Missing) == 0 && len(c.Unresolved) == 0
}

// Percent returns the translated share of the reference leaves.
func (c Coverage) Percent() float64 {
	if c.Total == 0 {
		return 100
	}
	return float64(c.Translated) * 100 / float64(c.Total)
}
