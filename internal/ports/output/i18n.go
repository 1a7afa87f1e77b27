package output

import "localesync/internal/domain/entities"

// LookupVerifier checks a working document the way the application's i18n
// layer reads it.
type LookupVerifier interface {
	// Unresolved returns the paths that a runtime lookup against doc cannot
	// find.
	Unresolved(code string, doc *entities.Node, paths []entities.Path) ([]entities.Path, error)
}
