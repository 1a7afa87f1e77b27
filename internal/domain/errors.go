package domain

import "errors"

// Domain errors.
var (
	ErrReferenceNotFound  = errors.New("reference locale file not found")
	ErrMalformedDocument  = errors.New("locale document is not a valid JSON object")
	ErrEmptyCatalog       = errors.New("locale catalog lists no target locales")
	ErrInvalidLocaleCode  = errors.New("invalid locale code")
	ErrDuplicateLocale    = errors.New("locale listed more than once")
	ErrReferenceAsTarget  = errors.New("reference locale cannot be a target locale")
	ErrWorkingDocNotFound = errors.New("working locale file not found")
	ErrImportUnsupported  = errors.New("no override store accepts imports")
	ErrUnknownLocale      = errors.New("locale is not in the catalog")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrReferenceNotFound, "reference_not_found"},
	{ErrMalformedDocument, "malformed_document"},
	{ErrEmptyCatalog, "empty_catalog"},
	{ErrInvalidLocaleCode, "invalid_locale_code"},
	{ErrDuplicateLocale, "duplicate_locale"},
	{ErrReferenceAsTarget, "reference_as_target"},
	{ErrWorkingDocNotFound, "working_doc_not_found"},
	{ErrImportUnsupported, "import_unsupported"},
	{ErrUnknownLocale, "unknown_locale"},
}

// Code returns the stable code of the first domain error wrapped by err,
// or "" when err carries none.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
