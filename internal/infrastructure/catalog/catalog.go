package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
)

//go:embed default.toml
var defaultCatalog []byte

type catalogFile struct {
	Locales []localeEntry `toml:"locales"`
}

type localeEntry struct {
	Code        string `toml:"code"`
	EnglishName string `toml:"english_name"`
	NativeName  string `toml:"native_name"`
}

// Catalog is the fixed list of target locales for a run.
type Catalog struct {
	locales []entities.Locale
}

// Load reads the catalog at path, or the embedded default catalog when path
// is empty. reference is the source locale and must not appear as a target.
func Load(path, reference string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog, reference)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data, reference)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a TOML catalog. Names left empty are filled
// from CLDR display names.
func Parse(data []byte, reference string) (*Catalog, error) {
	var f catalogFile
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if len(f.Locales) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	refTag, err := language.Parse(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: reference %q: %v", domain.ErrInvalidLocaleCode, reference, err)
	}

	seen := make(map[language.Tag]string, len(f.Locales))
	c := &Catalog{locales: make([]entities.Locale, 0, len(f.Locales))}
	for _, e := range f.Locales {
		code := strings.TrimSpace(e.Code)
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidLocaleCode, e.Code, err)
		}
		if tag == refTag {
			return nil, fmt.Errorf("%w: %s", domain.ErrReferenceAsTarget, code)
		}
		if prev, dup := seen[tag]; dup {
			return nil, fmt.Errorf("%w: %s and %s", domain.ErrDuplicateLocale, prev, code)
		}
		seen[tag] = code

		loc := entities.Locale{
			Code:        code,
			EnglishName: strings.TrimSpace(e.EnglishName),
			NativeName:  strings.TrimSpace(e.NativeName),
		}
		if loc.EnglishName == "" {
			loc.EnglishName = display.English.Tags().Name(tag)
		}
		if loc.NativeName == "" {
			loc.NativeName = display.Self.Name(tag)
		}
		c.locales = append(c.locales, loc)
	}
	return c, nil
}

// Locales returns the target locales in catalog order.
func (c *Catalog) Locales() []entities.Locale {
	return append([]entities.Locale(nil), c.locales...)
}

// Select returns the catalog entries for codes, in the order given. No codes
// selects the whole catalog.
func (c *Catalog) Select(codes ...string) ([]entities.Locale, error) {
	if len(codes) == 0 {
		return c.Locales(), nil
	}
	out := make([]entities.Locale, 0, len(codes))
	for _, code := range codes {
		loc, ok := c.find(code)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownLocale, code)
		}
		out = append(out, loc)
	}
	return out, nil
}

func (c *Catalog) find(code string) (entities.Locale, bool) {
	for _, loc := range c.locales {
		if strings.EqualFold(loc.Code, code) {
			return loc, true
		}
	}
	return entities.Locale{}, false
}
